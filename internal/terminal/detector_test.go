package terminal

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestDetector(options DetectorOptions, env map[string]string, tty bool) *Detector {
	d := NewDetector(options)
	d.getenv = func(key string) string { return env[key] }
	d.isTerminal = func(int) bool { return tty }
	return d
}

func TestDetector_IsInteractive(t *testing.T) {
	tests := []struct {
		name            string
		envVars         map[string]string
		options         DetectorOptions
		tty             bool
		wantInteractive bool
	}{
		{
			name:            "terminal without CI",
			tty:             true,
			wantInteractive: true,
		},
		{
			name:            "no terminal",
			tty:             false,
			wantInteractive: false,
		},
		{
			name:            "CI environment detected - GITHUB_ACTIONS",
			envVars:         map[string]string{"GITHUB_ACTIONS": "true"},
			tty:             true,
			wantInteractive: false,
		},
		{
			name:            "CI environment detected - CI=true",
			envVars:         map[string]string{"CI": "true"},
			tty:             true,
			wantInteractive: false,
		},
		{
			name:            "CI=false is not CI",
			envVars:         map[string]string{"CI": "false"},
			tty:             true,
			wantInteractive: true,
		},
		{
			name:            "CI environment detected - JENKINS_URL",
			envVars:         map[string]string{"JENKINS_URL": "http://jenkins.example.com"},
			tty:             true,
			wantInteractive: false,
		},
		{
			name:            "Force interactive mode overrides CI",
			envVars:         map[string]string{"CI": "true"},
			options:         DetectorOptions{ForceInteractive: true},
			wantInteractive: true,
		},
		{
			name:            "Force non-interactive mode",
			options:         DetectorOptions{ForceNonInteractive: true},
			tty:             true,
			wantInteractive: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detector := newTestDetector(tt.options, tt.envVars, tt.tty)
			assert.Equal(t, tt.wantInteractive, detector.IsInteractive())
		})
	}
}

func TestDetector_IsTerminal_ChecksStdinAndStdout(t *testing.T) {
	d := NewDetector(DetectorOptions{})
	var checked []int
	d.isTerminal = func(fd int) bool {
		checked = append(checked, fd)
		return true
	}

	assert.True(t, d.IsTerminal())
	assert.Equal(t, []int{int(os.Stdin.Fd()), int(os.Stdout.Fd())}, checked)
}

func TestIsCITruthy(t *testing.T) {
	for _, v := range []string{"true", "1", "yes", " TRUE "} {
		assert.True(t, isCITruthy(v), v)
	}
	for _, v := range []string{"false", "0", "no", " No "} {
		assert.False(t, isCITruthy(v), v)
	}
}
