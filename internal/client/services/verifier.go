package services

import (
	"context"
	"crypto/subtle"

	"github.com/dmitrijs2005/animedex/internal/client/client"
	"github.com/dmitrijs2005/animedex/internal/client/models"
	"github.com/dmitrijs2005/animedex/internal/common"
	"github.com/dmitrijs2005/animedex/internal/cryptox"
)

// Built-in credentials accepted by DefaultVerifier.
const (
	DefaultUsername = "admin"
	DefaultPassword = "password"
)

// Verifier checks a username/password pair. On mismatch it returns
// client.ErrInvalidCredentials; any other error means verification could not
// be performed.
type Verifier interface {
	Verify(ctx context.Context, username string, password []byte) (models.Identity, error)
}

// StaticVerifier accepts exactly one username/password pair. Only an argon2id
// verifier of the password is retained.
type StaticVerifier struct {
	username string
	salt     []byte
	verifier []byte
}

var _ Verifier = (*StaticVerifier)(nil)

// NewStaticVerifier derives the verifier for password and wipes password.
func NewStaticVerifier(username string, password []byte) *StaticVerifier {
	defer common.WipeByteArray(password)

	salt := common.GenerateRandByteArray(16)
	key := cryptox.DeriveMasterKey(password, salt)
	defer common.WipeByteArray(key)

	return &StaticVerifier{
		username: username,
		salt:     salt,
		verifier: cryptox.MakeVerifier(key),
	}
}

// DefaultVerifier accepts admin / password.
func DefaultVerifier() *StaticVerifier {
	return NewStaticVerifier(DefaultUsername, []byte(DefaultPassword))
}

// Verify wipes password before returning.
func (v *StaticVerifier) Verify(ctx context.Context, username string, password []byte) (models.Identity, error) {
	defer common.WipeByteArray(password)

	if err := ctx.Err(); err != nil {
		return models.Identity{}, err
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1
	passOK := cryptox.CheckPassword(password, v.salt, v.verifier)
	if !userOK || !passOK {
		return models.Identity{}, client.ErrInvalidCredentials
	}
	return models.Identity{Username: username}, nil
}
