// Package config loads runtime configuration for the animedex CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected with -c/--config or ANIMEDEX_CONFIG.
//  3. ANIMEDEX_* environment variables.
//  4. Command-line flags that were explicitly set.
//
// # File schema
//
// Durations use timex.Duration, so values can be either strings like "300ms"
// or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.jikan.moe/v4",
//	  "database_path": "animedex.db",
//	  "chunk_size": 5,
//	  "stagger_step": "300ms",
//	  "chunk_pause": "1.2s",
//	  "max_retries": 2,
//	  "initial_backoff": "1s",
//	  "page_size": 6,
//	  "log_format": "json"
//	}
//
// The same keys are accepted in YAML files (.yaml or .yml).
package config
