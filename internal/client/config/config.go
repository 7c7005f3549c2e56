package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/animedex/internal/logging"
)

// Config holds runtime settings for the animedex CLI and HTTP server.
//
// Durations are time.Duration values (e.g. 300*time.Millisecond).
type Config struct {
	APIBaseURL     string        `env:"ANIMEDEX_API_BASE_URL"`
	DatabasePath   string        `env:"ANIMEDEX_DATABASE_PATH"`
	RequestTimeout time.Duration `env:"ANIMEDEX_REQUEST_TIMEOUT"`

	ChunkSize      int           `env:"ANIMEDEX_CHUNK_SIZE"`
	MaxInFlight    int           `env:"ANIMEDEX_MAX_IN_FLIGHT"`
	StaggerStep    time.Duration `env:"ANIMEDEX_STAGGER_STEP"`
	ChunkPause     time.Duration `env:"ANIMEDEX_CHUNK_PAUSE"`
	MaxRetries     int           `env:"ANIMEDEX_MAX_RETRIES"`
	InitialBackoff time.Duration `env:"ANIMEDEX_INITIAL_BACKOFF"`

	PageSize   int    `env:"ANIMEDEX_PAGE_SIZE"`
	ListenAddr string `env:"ANIMEDEX_LISTEN_ADDR"`

	LogLevel  string `env:"ANIMEDEX_LOG_LEVEL"`
	LogFormat string `env:"ANIMEDEX_LOG_FORMAT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://api.jikan.moe/v4"
	c.DatabasePath = "animedex.db"
	c.RequestTimeout = 10 * time.Second

	c.ChunkSize = 5
	c.StaggerStep = 300 * time.Millisecond
	c.ChunkPause = 1200 * time.Millisecond
	c.MaxRetries = 2
	c.InitialBackoff = time.Second

	c.PageSize = 6
	c.ListenAddr = "127.0.0.1:8080"

	c.LogLevel = "info"
	c.LogFormat = logging.FormatText
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.APIBaseURL == "" {
		errs = append(errs, errors.New("api base url must not be empty"))
	}
	if c.DatabasePath == "" {
		errs = append(errs, errors.New("database path must not be empty"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout))
	}
	if c.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("chunk size must be positive, got %d", c.ChunkSize))
	}
	if c.MaxInFlight < 0 {
		errs = append(errs, fmt.Errorf("max in flight must not be negative, got %d", c.MaxInFlight))
	}
	if c.StaggerStep < 0 {
		errs = append(errs, fmt.Errorf("stagger step must not be negative, got %s", c.StaggerStep))
	}
	if c.ChunkPause < 0 {
		errs = append(errs, fmt.Errorf("chunk pause must not be negative, got %s", c.ChunkPause))
	}
	if c.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("max retries must not be negative, got %d", c.MaxRetries))
	}
	if c.InitialBackoff <= 0 {
		errs = append(errs, fmt.Errorf("initial backoff must be positive, got %s", c.InitialBackoff))
	}
	if c.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("page size must be positive, got %d", c.PageSize))
	}
	switch strings.ToLower(c.LogFormat) {
	case logging.FormatText, logging.FormatJSON, logging.FormatZap:
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}

	return errors.Join(errs...)
}
