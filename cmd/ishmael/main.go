// Package main provides the ishmael command, which hides messages and files
// as sequences of words drawn from a source text.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/isseis/go-ishmael/internal/cli"
	"github.com/isseis/go-ishmael/internal/codec"
	"github.com/isseis/go-ishmael/internal/color"
	"github.com/isseis/go-ishmael/internal/config"
	"github.com/isseis/go-ishmael/internal/logging"
	"github.com/isseis/go-ishmael/internal/session"
	"github.com/isseis/go-ishmael/internal/terminal"
	"github.com/oklog/ulid/v2"
)

// Exit codes
const (
	exitSuccess = 0
	exitFailure = 1
	exitUsage   = 2
)

var (
	errBothDirections  = errors.New("-e and -d cannot be used together")
	errNoMode          = errors.New("pass -e or -d to encode or decode a file, or -i for the menu")
	errBatchArgs       = errors.New("batch mode takes exactly three arguments: WORDLIST FILE SAVE")
	errInteractiveArgs = errors.New("the menu takes no positional arguments")
	errInteractiveMix  = errors.New("-i cannot be combined with -e or -d")

	// isInteractive reports whether the menu should run when no direction is given
	isInteractive = func(force bool) bool {
		return terminal.NewDetector(terminal.DetectorOptions{ForceInteractive: force}).IsInteractive()
	}

	// useColor reports whether menu output goes to a terminal that accepts color
	useColor = func() bool {
		return color.Enabled(terminal.NewDetector(terminal.DetectorOptions{}).IsTerminal(), os.LookupEnv)
	}
)

type commandLine struct {
	direction   cli.Direction
	interactive bool
	args        []string
	configPath  string
	force       *bool
	seed        *uint64
	logLevel    *string
	logFile     *string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd, fs, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitSuccess
		}
		printUsage(fs, stderr)
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	runID := ulid.Make()
	logger, closeLog, err := logging.Setup(logging.Options{
		Level:   level,
		Console: stderr,
		LogFile: cfg.Log.File,
		RunID:   runID.String(),
	})
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	defer func() {
		if err := closeLog(); err != nil {
			_, _ = fmt.Fprintf(stderr, "Warning: failed to close log file: %v\n", err)
		}
	}()

	opts := session.Options{Logger: logger, ID: runID}
	if cfg.Seed != nil {
		opts.Chooser = codec.NewChooser(*cfg.Seed)
	}

	if cmd.direction != 0 {
		opts.Modes = []session.Mode{session.ModeFile}
		return runBatch(session.New(opts), cmd, cfg, logger, stdout, stderr)
	}
	return runMenu(session.New(opts), cfg, logger, stdin, stdout, stderr)
}

func parseArgs(args []string, stderr io.Writer) (*commandLine, *flag.FlagSet, error) {
	options := struct {
		encode      bool
		decode      bool
		interactive bool
		force       bool
		seed        uint64
		configPath  string
		logLevel    string
		logFile     string
	}{}

	fs := flag.NewFlagSet("ishmael", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(fs, stderr) }
	fs.BoolVar(&options.encode, "e", false, "Encode FILE with WORDLIST and save the ciphertext to SAVE")
	fs.BoolVar(&options.decode, "d", false, "Decode the ciphertext in FILE with WORDLIST and save the result to SAVE")
	fs.BoolVar(&options.interactive, "i", false, "Run the interactive menu even without a terminal")
	fs.BoolVar(&options.force, "force", false, "Overwrite an existing save path")
	fs.Uint64Var(&options.seed, "seed", 0, "Seed word choices for reproducible output")
	fs.StringVar(&options.configPath, "config", "", "Path to a TOML configuration file")
	fs.StringVar(&options.logLevel, "log-level", "", "Log level (debug|info|warn|error)")
	fs.StringVar(&options.logFile, "log-file", "", "Append JSON logs to this file")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return nil, fs, err
	}

	cmd := &commandLine{
		interactive: options.interactive,
		args:        positional,
		configPath:  options.configPath,
	}

	// Only flags given on the command line override the configuration file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "force":
			cmd.force = &options.force
		case "seed":
			cmd.seed = &options.seed
		case "log-level":
			cmd.logLevel = &options.logLevel
		case "log-file":
			cmd.logFile = &options.logFile
		}
	})

	switch {
	case options.encode && options.decode:
		return nil, fs, errBothDirections
	case options.encode:
		cmd.direction = cli.DirectionEncode
	case options.decode:
		cmd.direction = cli.DirectionDecode
	}

	if cmd.direction != 0 {
		if cmd.interactive {
			return nil, fs, errInteractiveMix
		}
		if len(cmd.args) != 3 {
			return nil, fs, errBatchArgs
		}
		return cmd, fs, nil
	}

	if len(cmd.args) != 0 {
		return nil, fs, errInteractiveArgs
	}
	if !isInteractive(cmd.interactive) {
		return nil, fs, errNoMode
	}
	return cmd, fs, nil
}

// parseInterspersed parses flags wherever they appear, so
// "-e WORDLIST FILE SAVE -force" works. Everything after "--" is positional.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

func loadConfig(cmd *commandLine) (*config.Config, error) {
	cfg := config.Default()
	if cmd.configPath != "" {
		var err error
		if cfg, err = config.Load(cmd.configPath); err != nil {
			return nil, err
		}
	}

	if cmd.force != nil {
		cfg.Force = *cmd.force
	}
	if cmd.seed != nil {
		cfg.Seed = cmd.seed
	}
	if cmd.logLevel != nil {
		cfg.Log.Level = *cmd.logLevel
	}
	if cmd.logFile != nil {
		cfg.Log.File = *cmd.logFile
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	if fs == nil {
		return
	}
	name := filepath.Base(os.Args[0])
	_, _ = fmt.Fprintf(w, "Usage: %s [flags] -e|-d WORDLIST FILE SAVE\n", name)
	_, _ = fmt.Fprintf(w, "       %s [flags] [-i]\n", name)
	_, _ = fmt.Fprintf(w, "Flags may appear before or after the arguments; use -- to end flag parsing.\n\n")
	_, _ = fmt.Fprintf(w, "Without -e or -d the interactive menu runs:\n%s\n", cli.MenuText())
	fs.PrintDefaults()
}

func runBatch(sess *session.Session, cmd *commandLine, cfg *config.Config, logger *slog.Logger, stdout, stderr io.Writer) int {
	job := cli.BatchJob{
		Direction: cmd.direction,
		Wordlist:  cmd.args[0],
		Input:     cmd.args[1],
		Output:    cmd.args[2],
		Force:     cfg.Force,
	}
	if err := cli.RunBatch(sess, job, logger); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	_, _ = fmt.Fprintf(stdout, "Saved to %s\n", job.Output)
	return exitSuccess
}

func runMenu(sess *session.Session, cfg *config.Config, logger *slog.Logger, stdin io.Reader, stdout, stderr io.Writer) int {
	menu := cli.NewMenu(cli.MenuOptions{
		Session:  sess,
		In:       stdin,
		Out:      stdout,
		Logger:   logger,
		Retry:    cli.RetryPolicy{MaxAttempts: cfg.MaxAttempts()},
		Force:    cfg.Force,
		Wordlist: cfg.Wordlist,
		Color:    useColor(),
	})
	if err := menu.Run(); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	return exitSuccess
}
