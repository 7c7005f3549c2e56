package client

import (
	"context"

	"github.com/dmitrijs2005/animedex/internal/client/models"
)

// CharacterAPI is the remote source of character records.
type CharacterAPI interface {
	GetCharacter(ctx context.Context, id int) (models.Character, error)
	GetRandomCharacter(ctx context.Context) (models.Character, error)
}
