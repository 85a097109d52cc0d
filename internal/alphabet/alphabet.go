// Package alphabet defines the ordered symbol sets the substitution codec
// operates over.
//
// Symbol order is significant: the codec assigns corpus chunks to symbols in
// alphabet order, so two alphabets with the same symbols in a different order
// produce incompatible ciphertexts.
package alphabet

import (
	"errors"
	"fmt"
)

// Static errors for alphabet construction
var (
	// ErrEmptyAlphabet indicates an alphabet with no symbols was requested
	ErrEmptyAlphabet = errors.New("alphabet has no symbols")
	// ErrDuplicateSymbol indicates the same symbol appears twice
	ErrDuplicateSymbol = errors.New("duplicate symbol in alphabet")
)

const (
	lowerLetters = "abcdefghijklmnopqrstuvwxyz"
	upperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits       = "0123456789"
	whitespace   = " \t\n\r\v\f"
	punctuation  = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

	base64Symbols   = lowerLetters + upperLetters + digits + "+/="
	extendedSymbols = lowerLetters + upperLetters + whitespace + punctuation + digits
)

// Alphabet is an immutable ordered sequence of distinct symbols.
type Alphabet struct {
	name    string
	symbols []rune
	index   map[rune]int
}

// New creates an alphabet from the given symbols, preserving their order.
func New(name string, symbols []rune) (*Alphabet, error) {
	if len(symbols) == 0 {
		return nil, ErrEmptyAlphabet
	}

	index := make(map[rune]int, len(symbols))
	for i, s := range symbols {
		if prev, exists := index[s]; exists {
			return nil, fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicateSymbol, s, prev, i)
		}
		index[s] = i
	}

	owned := make([]rune, len(symbols))
	copy(owned, symbols)

	return &Alphabet{name: name, symbols: owned, index: index}, nil
}

// mustNew is used for the built-in alphabets, which are known to be valid.
func mustNew(name, symbols string) *Alphabet {
	a, err := New(name, []rune(symbols))
	if err != nil {
		panic(fmt.Sprintf("built-in alphabet %s: %v", name, err))
	}
	return a
}

var (
	base64Alphabet   = mustNew("base64", base64Symbols)
	extendedAlphabet = mustNew("extended", extendedSymbols)
)

// Base64 returns the 65-symbol alphabet used for binary transcoding:
// letters, digits, '+', '/' and the '=' padding character.
func Base64() *Alphabet {
	return base64Alphabet
}

// Extended returns the 100-symbol alphabet used for plain text messages:
// letters, whitespace, ASCII punctuation and digits.
func Extended() *Alphabet {
	return extendedAlphabet
}

// Name returns the alphabet's name, used in logs and errors.
func (a *Alphabet) Name() string {
	return a.name
}

// Len returns the number of symbols.
func (a *Alphabet) Len() int {
	return len(a.symbols)
}

// Symbols returns a copy of the symbols in alphabet order.
func (a *Alphabet) Symbols() []rune {
	out := make([]rune, len(a.symbols))
	copy(out, a.symbols)
	return out
}

// At returns the symbol at position i.
func (a *Alphabet) At(i int) rune {
	return a.symbols[i]
}

// Index returns the position of s and whether s belongs to the alphabet.
func (a *Alphabet) Index(s rune) (int, bool) {
	i, ok := a.index[s]
	return i, ok
}

// Contains reports whether s belongs to the alphabet.
func (a *Alphabet) Contains(s rune) bool {
	_, ok := a.index[s]
	return ok
}

// String returns the symbols as a string.
func (a *Alphabet) String() string {
	return string(a.symbols)
}
