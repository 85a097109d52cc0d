// Package codec implements the partitioned word-substitution codec.
//
// Each symbol of an alphabet owns a disjoint, contiguous chunk of a word
// corpus. Encoding replaces every symbol with a word picked from its chunk;
// decoding maps every word back to the symbol that owns it. Many
// ciphertexts decode to the same symbols, but decoding is exact.
//
// Example Usage:
//
//	book, err := codec.Build(alphabet.Extended(), words)
//	if err != nil {
//	    // Handle error
//	}
//	ciphertext, err := book.EncodeString("hello", codec.NewRandomChooser())
//	message, err := book.DecodeString(ciphertext)
package codec

import (
	"github.com/isseis/go-ishmael/internal/alphabet"
)

// EncodeTable maps every alphabet symbol to its chunk of words.
// It is an immutable snapshot; rebuild it with Build to change the corpus.
type EncodeTable struct {
	alphabet *alphabet.Alphabet
	chunks   [][]string // indexed by alphabet position
}

// Alphabet returns the alphabet the table was built over.
func (t *EncodeTable) Alphabet() *alphabet.Alphabet {
	return t.alphabet
}

// Words returns a copy of the chunk owned by symbol s.
func (t *EncodeTable) Words(s rune) ([]string, bool) {
	chunk, ok := t.chunk(s)
	if !ok {
		return nil, false
	}
	out := make([]string, len(chunk))
	copy(out, chunk)
	return out, true
}

func (t *EncodeTable) chunk(s rune) ([]string, bool) {
	i, ok := t.alphabet.Index(s)
	if !ok {
		return nil, false
	}
	return t.chunks[i], true
}

// Len returns the number of symbols in the table.
func (t *EncodeTable) Len() int {
	return len(t.chunks)
}

// DecodeTable maps every corpus word back to its owning symbol.
type DecodeTable struct {
	symbols map[string]rune
}

// Symbol returns the symbol owning word.
func (t *DecodeTable) Symbol(word string) (rune, bool) {
	s, ok := t.symbols[word]
	return s, ok
}

// Len returns the number of words in the table.
func (t *DecodeTable) Len() int {
	return len(t.symbols)
}

// Codebook is the (alphabet, encode table, decode table) triple produced by
// one Build call. It is safe to share between goroutines.
type Codebook struct {
	Encode *EncodeTable
	Decode *DecodeTable
}

// Alphabet returns the alphabet the codebook was built over.
func (b *Codebook) Alphabet() *alphabet.Alphabet {
	return b.Encode.alphabet
}

// EncodeString encodes the runes of s into a space-joined ciphertext.
func (b *Codebook) EncodeString(s string, chooser Chooser) (string, error) {
	words, err := Encode([]rune(s), b.Encode, chooser)
	if err != nil {
		return "", err
	}
	return Join(words), nil
}

// DecodeString decodes a space-joined ciphertext into the original string.
func (b *Codebook) DecodeString(ciphertext string) (string, error) {
	symbols, err := Decode(ciphertext, b.Decode)
	if err != nil {
		return "", err
	}
	return string(symbols), nil
}

// Stats describes how the corpus was partitioned.
type Stats struct {
	Symbols       int // Alphabet size
	Words         int // Corpus size
	ChunkSize     int // Nominal chunk size, ceil(words / symbols)
	SmallestChunk int // Size of the smallest chunk, usually the last one
}

// Stats reports the partition shape. A SmallestChunk well below ChunkSize
// means the symbols owning small chunks repeat their words more often.
func (b *Codebook) Stats() Stats {
	st := Stats{
		Symbols: len(b.Encode.chunks),
		Words:   b.Decode.Len(),
	}
	for i, chunk := range b.Encode.chunks {
		if i == 0 || len(chunk) > st.ChunkSize {
			st.ChunkSize = len(chunk)
		}
		if i == 0 || len(chunk) < st.SmallestChunk {
			st.SmallestChunk = len(chunk)
		}
	}
	return st
}
