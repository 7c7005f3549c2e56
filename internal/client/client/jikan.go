package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/animedex/internal/client/models"
	"github.com/go-resty/resty/v2"
)

const DefaultJikanBaseURL = "https://api.jikan.moe/v4"

var _ CharacterAPI = (*JikanClient)(nil)

// JikanClient talks to the Jikan v4 REST API. It performs a single attempt per
// call; retry policy belongs to the caller.
type JikanClient struct {
	http *resty.Client
}

func NewJikanClient(baseURL string, timeout time.Duration) *JikanClient {
	hc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "animedex-cli")

	return &JikanClient{http: hc}
}

type characterEnvelope struct {
	Data characterData `json:"data"`
}

type characterData struct {
	MalID  int    `json:"mal_id"`
	Name   string `json:"name"`
	About  string `json:"about"`
	Images struct {
		JPG struct {
			ImageURL string `json:"image_url"`
		} `json:"jpg"`
	} `json:"images"`
}

func (d characterData) toModel() models.Character {
	return models.Character{
		ID:       d.MalID,
		Name:     d.Name,
		About:    d.About,
		ImageURL: d.Images.JPG.ImageURL,
	}
}

// GetCharacter fetches /characters/{id}. The returned record always carries
// the requested id.
func (c *JikanClient) GetCharacter(ctx context.Context, id int) (models.Character, error) {
	var env characterEnvelope

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", strconv.Itoa(id)).
		ForceContentType("application/json").
		SetResult(&env).
		Get("/characters/{id}")
	if err := mapError(ctx, resp, err); err != nil {
		return models.Character{}, fmt.Errorf("character %d: %w", id, err)
	}

	ch := env.Data.toModel()
	ch.ID = id
	return ch, nil
}

// GetRandomCharacter fetches /random/characters.
func (c *JikanClient) GetRandomCharacter(ctx context.Context) (models.Character, error) {
	var env characterEnvelope

	resp, err := c.http.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetResult(&env).
		Get("/random/characters")
	if err := mapError(ctx, resp, err); err != nil {
		return models.Character{}, fmt.Errorf("random character: %w", err)
	}

	return env.Data.toModel(), nil
}

// mapError turns a transport error or a non-2xx status into one of the
// package sentinel errors.
func mapError(ctx context.Context, resp *resty.Response, err error) error {
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests:
		return ErrRateLimited
	case code < 200 || code > 299:
		return fmt.Errorf("%w: status %d", ErrUnavailable, code)
	}
	return nil
}
