package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "https://api.jikan.moe/v4", c.APIBaseURL)
	assert.Equal(t, 5, c.ChunkSize)
	assert.Equal(t, 300*time.Millisecond, c.StaggerStep)
	assert.Equal(t, 1200*time.Millisecond, c.ChunkPause)
	assert.Equal(t, 2, c.MaxRetries)
	assert.Equal(t, time.Second, c.InitialBackoff)
	assert.Equal(t, 6, c.PageSize)
	assert.Equal(t, "127.0.0.1:8080", c.ListenAddr)
	require.NoError(t, c.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }, "chunk size"},
		{"negative page size", func(c *Config) { c.PageSize = -1 }, "page size"},
		{"negative stagger", func(c *Config) { c.StaggerStep = -time.Second }, "stagger step"},
		{"negative pause", func(c *Config) { c.ChunkPause = -time.Second }, "chunk pause"},
		{"negative retries", func(c *Config) { c.MaxRetries = -1 }, "max retries"},
		{"negative in flight", func(c *Config) { c.MaxInFlight = -1 }, "max in flight"},
		{"zero backoff", func(c *Config) { c.InitialBackoff = 0 }, "initial backoff"},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, "request timeout"},
		{"empty api url", func(c *Config) { c.APIBaseURL = "" }, "api base url"},
		{"empty db path", func(c *Config) { c.DatabasePath = "" }, "database path"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "log format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)

			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	var c Config
	c.LoadDefaults()
	c.ChunkSize = 0
	c.PageSize = 0

	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chunk size")
	assert.Contains(t, err.Error(), "page size")
}

func TestValidate_AllowsZeroWaits(t *testing.T) {
	var c Config
	c.LoadDefaults()
	c.StaggerStep = 0
	c.ChunkPause = 0
	c.MaxRetries = 0

	assert.NoError(t, c.Validate())
}
