package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/animedex/internal/timex"
	"gopkg.in/yaml.v3"
)

// fileConfig is a DTO used exclusively for file unmarshalling.
// It relies on timex.Duration so durations can be written either as strings
// like "300ms" or as integer nanoseconds. Keys missing from the file keep the
// value they had before parsing.
type fileConfig struct {
	APIBaseURL     string         `json:"api_base_url" yaml:"api_base_url"`
	DatabasePath   string         `json:"database_path" yaml:"database_path"`
	RequestTimeout timex.Duration `json:"request_timeout" yaml:"request_timeout"`

	ChunkSize      int            `json:"chunk_size" yaml:"chunk_size"`
	MaxInFlight    int            `json:"max_in_flight" yaml:"max_in_flight"`
	StaggerStep    timex.Duration `json:"stagger_step" yaml:"stagger_step"`
	ChunkPause     timex.Duration `json:"chunk_pause" yaml:"chunk_pause"`
	MaxRetries     int            `json:"max_retries" yaml:"max_retries"`
	InitialBackoff timex.Duration `json:"initial_backoff" yaml:"initial_backoff"`

	PageSize   int    `json:"page_size" yaml:"page_size"`
	ListenAddr string `json:"listen_addr" yaml:"listen_addr"`

	LogLevel  string `json:"log_level" yaml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format"`
}

func newFileConfig(c *Config) fileConfig {
	return fileConfig{
		APIBaseURL:     c.APIBaseURL,
		DatabasePath:   c.DatabasePath,
		RequestTimeout: timex.Duration{Duration: c.RequestTimeout},
		ChunkSize:      c.ChunkSize,
		MaxInFlight:    c.MaxInFlight,
		StaggerStep:    timex.Duration{Duration: c.StaggerStep},
		ChunkPause:     timex.Duration{Duration: c.ChunkPause},
		MaxRetries:     c.MaxRetries,
		InitialBackoff: timex.Duration{Duration: c.InitialBackoff},
		PageSize:       c.PageSize,
		ListenAddr:     c.ListenAddr,
		LogLevel:       c.LogLevel,
		LogFormat:      c.LogFormat,
	}
}

func (fc fileConfig) apply(c *Config) {
	c.APIBaseURL = fc.APIBaseURL
	c.DatabasePath = fc.DatabasePath
	c.RequestTimeout = fc.RequestTimeout.Duration
	c.ChunkSize = fc.ChunkSize
	c.MaxInFlight = fc.MaxInFlight
	c.StaggerStep = fc.StaggerStep.Duration
	c.ChunkPause = fc.ChunkPause.Duration
	c.MaxRetries = fc.MaxRetries
	c.InitialBackoff = fc.InitialBackoff.Duration
	c.PageSize = fc.PageSize
	c.ListenAddr = fc.ListenAddr
	c.LogLevel = fc.LogLevel
	c.LogFormat = fc.LogFormat
}

// parseFile overlays cfg with the contents of path. Files ending in .yaml or
// .yml are read as YAML, everything else as JSON.
func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(cfg, data)
	default:
		return parseJSON(cfg, data)
	}
}

func parseJSON(cfg *Config, data []byte) error {
	fc := newFileConfig(cfg)
	if err := json.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse json config: %w", err)
	}
	fc.apply(cfg)
	return nil
}

func parseYAML(cfg *Config, data []byte) error {
	fc := newFileConfig(cfg)
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse yaml config: %w", err)
	}
	fc.apply(cfg)
	return nil
}
