package config

// Default values for configuration fields
const (
	DefaultMaxAttempts = 3
	DefaultLogLevel    = "info"
)

// ApplyDefaults fills in fields left unset by the configuration file.
func ApplyDefaults(cfg *Config) {
	if cfg.Retry.MaxAttempts == nil {
		defaultValue := DefaultMaxAttempts
		cfg.Retry.MaxAttempts = &defaultValue
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}
