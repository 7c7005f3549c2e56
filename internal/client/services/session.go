// Package services contains the application services of the animedex client:
// the session store and the character loader.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/animedex/internal/client/client"
	"github.com/dmitrijs2005/animedex/internal/client/models"
	"github.com/dmitrijs2005/animedex/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/animedex/internal/common"
	"github.com/dmitrijs2005/animedex/internal/dbx"
	"github.com/dmitrijs2005/animedex/internal/logging"
)

// SessionListener is called after the session changes. ok is false once the
// user is logged out.
type SessionListener func(identity models.Identity, ok bool)

// SessionService holds at most one logged-in Identity and mirrors it to the
// local metadata store. It is safe for concurrent use.
type SessionService struct {
	db       *sql.DB
	verifier Verifier
	log      logging.Logger
	now      func() time.Time

	mu        sync.RWMutex
	identity  models.Identity
	loggedIn  bool
	listeners map[int]SessionListener
	nextID    int
}

func NewSessionService(db *sql.DB, verifier Verifier, log logging.Logger) *SessionService {
	if log == nil {
		log = logging.Nop()
	}
	return &SessionService{
		db:        db,
		verifier:  verifier,
		log:       log,
		now:       time.Now,
		listeners: make(map[int]SessionListener),
	}
}

func (s *SessionService) repo() metadata.Repository {
	return metadata.NewSQLiteRepository(s.db)
}

// Restore loads a previously stored identity. Anything that cannot be read
// back as a valid identity is treated as no identity.
func (s *SessionService) Restore(ctx context.Context) (models.Identity, bool) {
	var id models.Identity
	found, err := metadata.GetJSON(ctx, s.repo(), common.IdentityStorageKey, &id)
	if err != nil {
		s.log.Warn(ctx, "ignoring unreadable stored identity", "error", err)
	}
	if err != nil || !found || !id.Valid() {
		s.set(models.Identity{}, false)
		return models.Identity{}, false
	}

	s.set(id, true)
	s.log.Debug(ctx, "session restored", "username", id.Username)
	return id, true
}

// Login verifies the credentials. A mismatch reports false with a nil error
// and leaves the session untouched. On success the identity is persisted
// before it becomes current.
func (s *SessionService) Login(ctx context.Context, username string, password []byte) (bool, error) {
	id, err := s.verifier.Verify(ctx, username, password)
	if errors.Is(err, client.ErrInvalidCredentials) {
		s.log.Info(ctx, "login rejected", "username", username)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("verify credentials: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := metadata.SetJSON(ctx, repo, common.IdentityStorageKey, id); err != nil {
			return err
		}
		stamp := s.now().UTC().Format(time.RFC3339)
		return repo.Set(ctx, common.LastLoginStorageKey, []byte(stamp))
	})
	if err != nil {
		return false, fmt.Errorf("persist identity: %w", err)
	}

	s.set(id, true)
	s.log.Info(ctx, "logged in", "username", id.Username)
	return true, nil
}

// Logout clears the in-memory identity and removes it from storage. The
// in-memory identity is cleared even when the storage delete fails.
func (s *SessionService) Logout(ctx context.Context) error {
	prev, _ := s.Current()
	s.set(models.Identity{}, false)

	if err := s.repo().Delete(ctx, common.IdentityStorageKey, common.LastLoginStorageKey); err != nil {
		return fmt.Errorf("remove stored identity: %w", err)
	}
	s.log.Info(ctx, "logged out", "username", prev.Username)
	return nil
}

func (s *SessionService) Current() (models.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity, s.loggedIn
}

// LastLogin returns the time of the last successful login stored locally.
func (s *SessionService) LastLogin(ctx context.Context) (time.Time, bool) {
	raw, err := s.repo().Get(ctx, common.LastLoginStorageKey)
	if err != nil || raw == nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, string(raw))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Subscribe registers fn for session changes and returns a function that
// removes it.
func (s *SessionService) Subscribe(fn SessionListener) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *SessionService) set(id models.Identity, ok bool) {
	s.mu.Lock()
	s.identity, s.loggedIn = id, ok
	listeners := make([]SessionListener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(id, ok)
	}
}
