package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"syscall"
)

const (
	// File permissions for log files
	logFilePerm = 0o600
)

// ErrConsoleWriterRequired is returned when Options.Console is nil.
var ErrConsoleWriterRequired = errors.New("console writer is required")

// Options configures Setup.
type Options struct {
	Level   slog.Level
	Console io.Writer // Human-readable output, normally os.Stderr
	LogFile string    // Optional JSON run log, appended to
	RunID   string    // Attached to every JSON record
}

// Setup builds the logger. The returned close function releases the log file
// and must be called once logging is finished.
func Setup(opts Options) (*slog.Logger, func() error, error) {
	if opts.Console == nil {
		return nil, nil, ErrConsoleWriterRequired
	}

	console := slog.NewTextHandler(opts.Console, &slog.HandlerOptions{Level: opts.Level})
	closeFn := func() error { return nil }

	if opts.LogFile == "" {
		return slog.New(console), closeFn, nil
	}

	// #nosec G304 - the log path is operator supplied; symlinks are refused
	logF, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND|syscall.O_NOFOLLOW, logFilePerm)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	jsonHandler := slog.NewJSONHandler(logF, &slog.HandlerOptions{Level: opts.Level}).
		WithAttrs([]slog.Attr{
			slog.String("hostname", hostname),
			slog.Int("pid", os.Getpid()),
			slog.String("run_id", opts.RunID),
		})

	return slog.New(NewMultiHandler(console, jsonHandler)), logF.Close, nil
}
