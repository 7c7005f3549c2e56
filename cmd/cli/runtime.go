package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/dmitrijs2005/animedex/internal/client/client"
	"github.com/dmitrijs2005/animedex/internal/client/config"
	"github.com/dmitrijs2005/animedex/internal/client/services"
	"github.com/dmitrijs2005/animedex/internal/logging"
)

// runtime holds everything a command needs once configuration is loaded.
type runtime struct {
	cfg     *config.Config
	log     logging.Logger
	db      *sql.DB
	session *services.SessionService
	loader  *services.CharacterService
}

func (rt *runtime) open(ctx context.Context, flags *config.Flags, logOut io.Writer) error {
	cfg, err := flags.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	rt.cfg = cfg

	rt.log, err = logging.New(cfg.LogFormat, cfg.LogLevel, logOut)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	rt.db, err = client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("error initializing database: %w", err)
	}

	rt.session = services.NewSessionService(rt.db, services.DefaultVerifier(), rt.log.With("module", "session"))

	api := client.NewJikanClient(cfg.APIBaseURL, cfg.RequestTimeout)
	rt.loader = services.NewCharacterService(api, services.LoaderOptions{
		ChunkSize:      cfg.ChunkSize,
		MaxInFlight:    cfg.MaxInFlight,
		StaggerStep:    cfg.StaggerStep,
		ChunkPause:     cfg.ChunkPause,
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
	}, rt.log.With("module", "loader"))

	rt.log.Debug(ctx, "runtime ready", "database", cfg.DatabasePath, "api", cfg.APIBaseURL)
	return nil
}

func (rt *runtime) close() {
	if rt.db != nil {
		_ = rt.db.Close()
		rt.db = nil
	}
	if s, ok := rt.log.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}
