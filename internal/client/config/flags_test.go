package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, environ map[string]string, args ...string) *Flags {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f := BindFlags(fs)
	f.environ = environ
	require.NoError(t, fs.Parse(args))
	return f
}

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := newFlags(t, map[string]string{}).Load()
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	if diff := cmp.Diff(&want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"chunk_size":   3,
		"page_size":    9,
		"listen_addr":  "0.0.0.0:1",
		"stagger_step": "1s",
	})
	environ := map[string]string{
		"ANIMEDEX_PAGE_SIZE":   "12",
		"ANIMEDEX_LISTEN_ADDR": "0.0.0.0:2",
		"ANIMEDEX_CHUNK_PAUSE": "5s",
	}

	cfg, err := newFlags(t, environ, "--config", path, "-a", "0.0.0.0:3", "--stagger", "50ms").Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.ChunkSize, "file over defaults")
	assert.Equal(t, 12, cfg.PageSize, "env over file")
	assert.Equal(t, 5*time.Second, cfg.ChunkPause, "env over defaults")
	assert.Equal(t, "0.0.0.0:3", cfg.ListenAddr, "flag over env")
	assert.Equal(t, 50*time.Millisecond, cfg.StaggerStep, "flag over file")
	assert.Equal(t, 2, cfg.MaxRetries, "untouched default")
}

func TestLoad_UnsetFlagsDoNotOverride(t *testing.T) {
	environ := map[string]string{"ANIMEDEX_MAX_RETRIES": "7"}

	cfg, err := newFlags(t, environ, "--page-size", "4").Load()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.MaxRetries)
	assert.Equal(t, 4, cfg.PageSize)
}

func TestLoad_ConfigFileFromEnv(t *testing.T) {
	path := writeTempFile(t, "cfg.yaml", "page_size: 8\n")

	cfg, err := newFlags(t, map[string]string{EnvConfigFile: path}).Load()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.PageSize)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("bad env value", func(t *testing.T) {
		_, err := newFlags(t, map[string]string{"ANIMEDEX_CHUNK_SIZE": "many"}).Load()
		assert.Error(t, err)
	})

	t.Run("invalid result", func(t *testing.T) {
		_, err := newFlags(t, map[string]string{}, "--chunk-size", "0").Load()
		assert.ErrorContains(t, err, "chunk size")
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := newFlags(t, map[string]string{}, "-c", "/does/not/exist.json").Load()
		assert.Error(t, err)
	})
}

func TestBindFlags_BadDuration(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	assert.Error(t, fs.Parse([]string{"--stagger", "abc"}))
}

func TestLoad_FlagsParsedThroughMergedSet(t *testing.T) {
	persistent := pflag.NewFlagSet("root", pflag.ContinueOnError)
	f := BindFlags(persistent)
	f.environ = map[string]string{}

	merged := pflag.NewFlagSet("whoami", pflag.ContinueOnError)
	merged.AddFlagSet(persistent)
	require.NoError(t, merged.Parse([]string{"--db", "/tmp/x.db", "--max-in-flight", "2", "--page-size", "9"}))

	cfg, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", cfg.DatabasePath)
	assert.Equal(t, 2, cfg.MaxInFlight)
	assert.Equal(t, 9, cfg.PageSize)
	assert.Equal(t, 5, cfg.ChunkSize, "unset flag keeps its default")
}
