package codec

import (
	"fmt"
	"strings"
)

// Encode replaces every symbol with a word chosen from its chunk.
// The result has exactly one word per symbol. Encode only consumes
// randomness from chooser; it does not modify the table.
func Encode(symbols []rune, table *EncodeTable, chooser Chooser) ([]string, error) {
	words := make([]string, len(symbols))
	for i, s := range symbols {
		chunk, ok := table.chunk(s)
		if !ok {
			return nil, &UnknownSymbolError{Symbol: s, Position: i}
		}
		pick := chooser.IntN(len(chunk))
		if pick < 0 || pick >= len(chunk) {
			return nil, fmt.Errorf("%w: %d for a chunk of %d words", ErrInvalidChoice, pick, len(chunk))
		}
		words[i] = chunk[pick]
	}
	return words, nil
}

// Join serializes words into a ciphertext.
func Join(words []string) string {
	return strings.Join(words, Delimiter)
}
