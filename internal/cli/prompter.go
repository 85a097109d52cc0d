package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineLength caps a single answer, which may be a pasted ciphertext.
const maxLineLength = 64 * 1024 * 1024

// Prompter writes prompts and reads line-based answers.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewPrompter creates a prompter reading from in and writing to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return &Prompter{scanner: scanner, out: out}
}

// Ask prints prompt and returns the next line without its line ending.
// It returns io.EOF when input is exhausted.
func (p *Prompter) Ask(prompt string) (string, error) {
	if _, err := fmt.Fprint(p.out, prompt); err != nil {
		return "", err
	}
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSuffix(p.scanner.Text(), "\r"), nil
}

// Say prints a line.
func (p *Prompter) Say(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}
