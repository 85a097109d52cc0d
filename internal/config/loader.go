// Package config loads the optional TOML configuration file. Command-line
// flags are applied on top of the loaded values by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/isseis/go-ishmael/internal/safefileio"
	"github.com/pelletier/go-toml/v2"
)

// Config is the configuration file schema.
type Config struct {
	// Wordlist is the source text the interactive menu loads at startup
	Wordlist string `toml:"wordlist"`

	// Seed makes word choices reproducible when set
	Seed *uint64 `toml:"seed"`

	// Force allows overwriting existing save paths
	Force bool `toml:"force"`

	Retry RetrySpec `toml:"retry"`
	Log   LogSpec   `toml:"log"`
}

// RetrySpec controls re-prompting on missing files in the interactive menu.
type RetrySpec struct {
	MaxAttempts *int `toml:"max_attempts"`
}

// LogSpec controls logging.
type LogSpec struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrInvalidConfigPath
	}
	content, err := safefileio.SafeReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates configuration content. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func Parse(content []byte) (*Config, error) {
	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("failed to parse config: %s", strict.String())
		}
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks field values after defaults have been applied.
func Validate(cfg *Config) error {
	if cfg.Retry.MaxAttempts != nil && *cfg.Retry.MaxAttempts < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxAttempts, *cfg.Retry.MaxAttempts)
	}
	if _, err := ParseLevel(cfg.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel converts a level name into a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, name)
	}
}

// MaxAttempts returns the configured retry limit.
func (c *Config) MaxAttempts() int {
	if c.Retry.MaxAttempts == nil {
		return DefaultMaxAttempts
	}
	return *c.Retry.MaxAttempts
}
