package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/animedex/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const spikeJSON = `{"data":{"mal_id":1,"name":"Spike Spiegel","about":"Bounty hunter.","images":{"jpg":{"image_url":"https://cdn.example/spike.jpg"}}}}`

func newTestServer(t *testing.T, h http.HandlerFunc) *JikanClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewJikanClient(srv.URL, 2*time.Second)
}

func TestJikanClient_GetCharacter_OK(t *testing.T) {
	var gotPath string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(spikeJSON))
	})

	ch, err := c.GetCharacter(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "/characters/1", gotPath)
	assert.Equal(t, models.Character{
		ID:       1,
		Name:     "Spike Spiegel",
		About:    "Bounty hunter.",
		ImageURL: "https://cdn.example/spike.jpg",
	}, ch)
}

func TestJikanClient_GetCharacter_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"not found", http.StatusNotFound, ErrNotFound},
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"server error", http.StatusInternalServerError, ErrUnavailable},
		{"bad gateway", http.StatusBadGateway, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			_, err := c.GetCharacter(context.Background(), 7)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestJikanClient_GetCharacter_MalformedBodyIsUnavailable(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":`))
	})

	_, err := c.GetCharacter(context.Background(), 1)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestJikanClient_TransportErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewJikanClient(url, time.Second)
	_, err := c.GetCharacter(context.Background(), 1)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestJikanClient_CancelledContext(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(spikeJSON))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetCharacter(ctx, 1)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.Is(err, ErrUnavailable))
}

func TestJikanClient_GetRandomCharacter(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/random/characters" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(spikeJSON))
	})

	ch, err := c.GetRandomCharacter(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, ch.ID)
	assert.Equal(t, "Spike Spiegel", ch.Name)
}
