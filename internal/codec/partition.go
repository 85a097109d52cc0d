package codec

import (
	"fmt"
	"strings"

	"github.com/isseis/go-ishmael/internal/alphabet"
)

// Delimiter separates words in a serialized ciphertext.
const Delimiter = " "

// Build partitions words over the symbols of a and returns the resulting
// codebook. words must be deduplicated and must not contain the delimiter.
//
// The corpus is split into contiguous chunks of ceil(len(words)/a.Len())
// words, the last chunk possibly shorter, and chunk i is assigned to the i-th
// symbol. When the split yields fewer chunks than symbols, Build fails with an
// *InsufficientWordsError instead of leaving symbols without words. Build is
// deterministic: the same inputs always give identical tables.
func Build(a *alphabet.Alphabet, words []string) (*Codebook, error) {
	if a == nil {
		return nil, ErrNilAlphabet
	}
	if err := validateWords(words); err != nil {
		return nil, err
	}

	k := a.Len()
	n := len(words)
	if n < k {
		return nil, &InsufficientWordsError{Alphabet: a.Name(), Symbols: k, Words: n, Chunks: chunkCount(n, k)}
	}

	size := ceilDiv(n, k)
	if chunks := ceilDiv(n, size); chunks < k {
		return nil, &InsufficientWordsError{Alphabet: a.Name(), Symbols: k, Words: n, Chunks: chunks}
	}

	enc := &EncodeTable{
		alphabet: a,
		chunks:   make([][]string, k),
	}
	dec := &DecodeTable{
		symbols: make(map[string]rune, n),
	}

	for i := range k {
		start := i * size
		end := min(start+size, n)

		chunk := make([]string, end-start)
		copy(chunk, words[start:end])
		enc.chunks[i] = chunk

		symbol := a.At(i)
		for _, w := range chunk {
			dec.symbols[w] = symbol
		}
	}

	return &Codebook{Encode: enc, Decode: dec}, nil
}

// validateWords rejects corpora that would break the bijection or the
// ciphertext serialization.
func validateWords(words []string) error {
	seen := make(map[string]int, len(words))
	for i, w := range words {
		if w == "" || strings.Contains(w, Delimiter) {
			return fmt.Errorf("%w: %q at position %d", ErrInvalidWord, w, i)
		}
		if prev, exists := seen[w]; exists {
			return fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicateWord, w, prev, i)
		}
		seen[w] = i
	}
	return nil
}

// chunkCount returns how many chunks n words split into for k symbols.
func chunkCount(n, k int) int {
	if n == 0 {
		return 0
	}
	return ceilDiv(n, ceilDiv(n, k))
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
