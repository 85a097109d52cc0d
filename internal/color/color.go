// Package color wraps menu output in ANSI escape sequences when the
// operator is at a terminal.
//
//nolint:revive // package name conflicts with standard library
package color

// ANSI color codes
const (
	resetCode  = "\033[0m"
	greenCode  = "\033[32m"
	yellowCode = "\033[33m"
	redCode    = "\033[31m"
)

// Color wraps text with ANSI escape sequences.
type Color func(text string) string

// NewColor creates a color function with the specified ANSI code.
func NewColor(ansiCode string) Color {
	return func(text string) string {
		return ansiCode + text + resetCode
	}
}

func plain(text string) string { return text }

// Palette assigns a color to each kind of menu output.
type Palette struct {
	Error  Color // Failed actions
	Result Color // Encoded and decoded output
	Notice Color // Hints such as retry prompts
}

// NewPalette returns a colored palette, or one that leaves text untouched
// when enabled is false.
func NewPalette(enabled bool) Palette {
	if !enabled {
		return Palette{Error: plain, Result: plain, Notice: plain}
	}
	return Palette{
		Error:  NewColor(redCode),
		Result: NewColor(greenCode),
		Notice: NewColor(yellowCode),
	}
}

// Enabled reports whether output should be colored. Any setting of
// NO_COLOR disables color, even an empty one.
func Enabled(isTerminal bool, lookupEnv func(string) (string, bool)) bool {
	if _, exists := lookupEnv("NO_COLOR"); exists {
		return false
	}
	return isTerminal
}
