package config

import (
	"os"

	"github.com/spf13/pflag"
)

// Flags binds configuration to a pflag.FlagSet. Only flags the user actually
// set override values coming from the file or the environment.
type Flags struct {
	fs     *pflag.FlagSet
	file   string
	values Config

	// environ replaces the process environment in tests.
	environ map[string]string
}

// BindFlags registers the configuration flags on fs. Flag defaults show the
// built-in defaults.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	f.values.LoadDefaults()
	v := &f.values

	fs.StringVarP(&f.file, "config", "c", "", "path to a JSON or YAML config file")
	fs.StringVar(&v.APIBaseURL, "api-url", v.APIBaseURL, "base URL of the character API")
	fs.StringVarP(&v.DatabasePath, "db", "d", v.DatabasePath, "path to the local SQLite database")
	fs.DurationVar(&v.RequestTimeout, "timeout", v.RequestTimeout, "timeout of a single API request")
	fs.IntVar(&v.ChunkSize, "chunk-size", v.ChunkSize, "characters fetched per chunk")
	fs.IntVar(&v.MaxInFlight, "max-in-flight", v.MaxInFlight, "concurrent requests within a chunk (0 means chunk size)")
	fs.DurationVar(&v.StaggerStep, "stagger", v.StaggerStep, "delay between request starts within a chunk")
	fs.DurationVar(&v.ChunkPause, "chunk-pause", v.ChunkPause, "pause between chunks")
	fs.IntVar(&v.MaxRetries, "max-retries", v.MaxRetries, "retries per character after the first attempt")
	fs.DurationVar(&v.InitialBackoff, "backoff", v.InitialBackoff, "first retry delay, doubled on each retry")
	fs.IntVar(&v.PageSize, "page-size", v.PageSize, "characters per page")
	fs.StringVarP(&v.ListenAddr, "listen", "a", v.ListenAddr, "address the HTTP server listens on")
	fs.StringVar(&v.LogLevel, "log-level", v.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&v.LogFormat, "log-format", v.LogFormat, "log format: text, json or zap")

	return f
}

// Load builds a Config: defaults, then the config file, then ANIMEDEX_*
// environment variables, then explicitly set flags. The result is validated.
func (f *Flags) Load() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	file := f.file
	if file == "" {
		file = f.lookupEnv(EnvConfigFile)
	}
	if file != "" {
		if err := parseFile(cfg, file); err != nil {
			return nil, err
		}
	}

	if err := parseEnv(cfg, f.environ); err != nil {
		return nil, err
	}

	f.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (f *Flags) lookupEnv(key string) string {
	if f.environ != nil {
		return f.environ[key]
	}
	return os.Getenv(key)
}

// apply copies the values of changed flags into cfg. Persistent flags are
// parsed through the executing command's merged set, so only the shared
// Changed bit tells which of them were set.
func (f *Flags) apply(cfg *Config) {
	f.fs.VisitAll(func(fl *pflag.Flag) {
		if !fl.Changed {
			return
		}
		v := &f.values
		switch fl.Name {
		case "api-url":
			cfg.APIBaseURL = v.APIBaseURL
		case "db":
			cfg.DatabasePath = v.DatabasePath
		case "timeout":
			cfg.RequestTimeout = v.RequestTimeout
		case "chunk-size":
			cfg.ChunkSize = v.ChunkSize
		case "max-in-flight":
			cfg.MaxInFlight = v.MaxInFlight
		case "stagger":
			cfg.StaggerStep = v.StaggerStep
		case "chunk-pause":
			cfg.ChunkPause = v.ChunkPause
		case "max-retries":
			cfg.MaxRetries = v.MaxRetries
		case "backoff":
			cfg.InitialBackoff = v.InitialBackoff
		case "page-size":
			cfg.PageSize = v.PageSize
		case "listen":
			cfg.ListenAddr = v.ListenAddr
		case "log-level":
			cfg.LogLevel = v.LogLevel
		case "log-format":
			cfg.LogFormat = v.LogFormat
		}
	})
}
