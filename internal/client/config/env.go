package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfigFile names the variable that may point at a config file when
// --config is not given.
const EnvConfigFile = "ANIMEDEX_CONFIG"

// parseEnv overlays cfg with ANIMEDEX_* variables taken from environ, or from
// the process environment when environ is nil. Unset variables leave fields
// untouched.
func parseEnv(cfg *Config, environ map[string]string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
