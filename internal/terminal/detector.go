// Package terminal decides whether the process should run the interactive
// menu: a person must be able to read the prompts and type answers, and the
// process must not be running under CI.
package terminal

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// ciEnvVars contains common CI environment variables
var ciEnvVars = []string{
	"CI",                     // Generic CI indicator
	"CONTINUOUS_INTEGRATION", // Generic CI indicator
	"GITHUB_ACTIONS",         // GitHub Actions
	"TRAVIS",                 // Travis CI
	"CIRCLECI",               // Circle CI
	"JENKINS_URL",            // Jenkins
	"BUILD_NUMBER",           // Jenkins/TeamCity/etc
	"GITLAB_CI",              // GitLab CI
	"BUILDKITE",              // Buildkite
	"TF_BUILD",               // Azure DevOps
}

// DetectorOptions contains options for controlling interactive detection
type DetectorOptions struct {
	ForceInteractive    bool // Force interactive mode regardless of environment
	ForceNonInteractive bool // Force non-interactive mode regardless of environment
}

// Detector reports whether the current process is attended by a person.
type Detector struct {
	options    DetectorOptions
	isTerminal func(fd int) bool
	getenv     func(key string) string
	stdin      *os.File
	stdout     *os.File
}

// NewDetector creates a detector for os.Stdin and os.Stdout.
func NewDetector(options DetectorOptions) *Detector {
	return &Detector{
		options:    options,
		isTerminal: term.IsTerminal,
		getenv:     os.Getenv,
		stdin:      os.Stdin,
		stdout:     os.Stdout,
	}
}

// IsInteractive returns true if the menu should be shown.
func (d *Detector) IsInteractive() bool {
	// Priority 1: Command line options (highest priority)
	if d.options.ForceInteractive {
		return true
	}
	if d.options.ForceNonInteractive {
		return false
	}

	// Priority 2: CI environment detection
	if d.IsCIEnvironment() {
		return false
	}

	// Priority 3: Terminal detection
	return d.IsTerminal()
}

// IsTerminal checks that both stdin and stdout are connected to a terminal.
func (d *Detector) IsTerminal() bool {
	return d.isTerminal(int(d.stdin.Fd())) && d.isTerminal(int(d.stdout.Fd()))
}

// IsCIEnvironment checks if the current environment is a CI/CD system
func (d *Detector) IsCIEnvironment() bool {
	for _, envVar := range ciEnvVars {
		if value := d.getenv(envVar); value != "" {
			// CI=false or CI=0 should not be considered a CI environment
			if envVar == "CI" {
				return isCITruthy(value)
			}
			return true
		}
	}

	return false
}

func isCITruthy(value string) bool {
	lower := strings.ToLower(strings.TrimSpace(value))
	return lower != "false" && lower != "0" && lower != "no"
}
