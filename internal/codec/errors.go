package codec

import (
	"errors"
	"fmt"
)

// Sentinel errors for the substitution codec. The structured error types
// below unwrap to these, so callers can branch with errors.Is.
var (
	// ErrInsufficientWords indicates the corpus cannot give every symbol a chunk
	ErrInsufficientWords = errors.New("insufficient words in corpus")
	// ErrUnknownSymbol indicates a symbol outside the alphabet was passed to Encode
	ErrUnknownSymbol = errors.New("unknown symbol")
	// ErrUnknownWord indicates a ciphertext token missing from the decode table
	ErrUnknownWord = errors.New("unknown word")
	// ErrDuplicateWord indicates the corpus was not deduplicated
	ErrDuplicateWord = errors.New("duplicate word in corpus")
	// ErrInvalidWord indicates an empty word or a word containing the delimiter
	ErrInvalidWord = errors.New("invalid word in corpus")
	// ErrNilAlphabet indicates Build was called without an alphabet
	ErrNilAlphabet = errors.New("alphabet is nil")
	// ErrInvalidChoice indicates a Chooser returned an index outside the chunk
	ErrInvalidChoice = errors.New("chooser returned an out-of-range index")
)

// InsufficientWordsError reports a corpus too small to partition over an alphabet.
type InsufficientWordsError struct {
	Alphabet string // Name of the alphabet being partitioned
	Symbols  int    // Number of symbols that need a chunk
	Words    int    // Number of corpus words
	Chunks   int    // Number of chunks the split produced
}

func (e *InsufficientWordsError) Error() string {
	return fmt.Sprintf("%s alphabet has %d symbols but %d words split into only %d chunks",
		e.Alphabet, e.Symbols, e.Words, e.Chunks)
}

func (e *InsufficientWordsError) Unwrap() error {
	return ErrInsufficientWords
}

// UnknownSymbolError reports a symbol with no entry in the encode table.
type UnknownSymbolError struct {
	Symbol   rune
	Position int // Zero-based index in the symbol sequence
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown symbol %q at position %d", e.Symbol, e.Position)
}

func (e *UnknownSymbolError) Unwrap() error {
	return ErrUnknownSymbol
}

// UnknownWordError reports a ciphertext token with no entry in the decode table.
// It usually means the ciphertext was produced with a different wordlist.
type UnknownWordError struct {
	Word     string
	Position int // Zero-based token index in the ciphertext
}

func (e *UnknownWordError) Error() string {
	if e.Word == "" {
		return fmt.Sprintf("empty token at position %d (ciphertext must be joined by single spaces)", e.Position)
	}
	return fmt.Sprintf("unknown word %q at position %d", e.Word, e.Position)
}

func (e *UnknownWordError) Unwrap() error {
	return ErrUnknownWord
}
