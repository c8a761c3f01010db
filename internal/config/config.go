// Package config loads tsgen settings from a YAML file with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "tsgen.yaml"

// EnvPrefix prefixes every environment override, e.g. TSGEN_OUT.
const EnvPrefix = "TSGEN_"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all generator settings.
type Config struct {
	// Root is the directory scanned for C# sources.
	Root string `yaml:"root" env:"ROOT"`
	// Out is the directory generated units are written to.
	Out string `yaml:"out" env:"OUT"`

	Include []string `yaml:"include" env:"INCLUDE" envSeparator:","`
	Exclude []string `yaml:"exclude" env:"EXCLUDE" envSeparator:","`

	Workers int `yaml:"workers" env:"WORKERS"`

	// Prune removes generated units in Out that the current run did not produce.
	Prune bool `yaml:"prune" env:"PRUNE"`

	Log   LogConfig   `yaml:"log" envPrefix:"LOG_"`
	Watch WatchConfig `yaml:"watch" envPrefix:"WATCH_"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`   // debug, info, warn, error
	Format string `yaml:"format" env:"FORMAT"` // json, console
}

// WatchConfig configures `tsgen watch`.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" env:"DEBOUNCE"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Root:    ".",
		Out:     "Generated",
		Include: []string{".cs"},
		Exclude: []string{"bin", "obj", ".git", ".vs"},
		Workers: runtime.GOMAXPROCS(0),
		Prune:   true,
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// A missing file is not an error when path is DefaultPath.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && path == DefaultPath:
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseEnv applies TSGEN_* environment variables to cfg. Unset variables
// leave fields untouched.
func ParseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Root) == "":
		return fmt.Errorf("%w: root must not be empty", ErrInvalid)
	case strings.TrimSpace(c.Out) == "":
		return fmt.Errorf("%w: out must not be empty", ErrInvalid)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Workers)
	case c.Watch.Debounce < 0:
		return fmt.Errorf("%w: watch.debounce must not be negative", ErrInvalid)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalid, c.Log.Format)
	}
	return nil
}
