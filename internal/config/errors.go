package config

import "errors"

// Error definitions for the config package
var (
	// ErrInvalidConfigPath is returned when the config file path is invalid
	ErrInvalidConfigPath = errors.New("invalid config file path")

	// ErrInvalidMaxAttempts is returned when retry.max_attempts is less than 1
	ErrInvalidMaxAttempts = errors.New("retry.max_attempts must be at least 1")

	// ErrInvalidLogLevel is returned when log.level is not a known level
	ErrInvalidLogLevel = errors.New("invalid log level - valid options are: debug, info, warn, error")
)
