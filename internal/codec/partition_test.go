package codec

import (
	"fmt"
	"testing"

	"github.com/isseis/go-ishmael/internal/alphabet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAlphabet(t *testing.T, symbols string) *alphabet.Alphabet {
	t.Helper()
	a, err := alphabet.New("test", []rune(symbols))
	require.NoError(t, err)
	return a
}

var mobyWords = []string{"the", "who", "moby", "dick", "is", "a", "whale", "story"}

func TestBuild_ConcreteExample(t *testing.T) {
	book, err := Build(newAlphabet(t, "abc"), mobyWords)
	require.NoError(t, err)

	want := map[rune][]string{
		'a': {"the", "who", "moby"},
		'b': {"dick", "is", "a"},
		'c': {"whale", "story"},
	}
	for symbol, words := range want {
		got, ok := book.Encode.Words(symbol)
		require.True(t, ok, "symbol %q missing", symbol)
		assert.Equal(t, words, got, "chunk for %q", symbol)
	}

	assert.Equal(t, 3, book.Encode.Len())
	assert.Equal(t, len(mobyWords), book.Decode.Len())
	for symbol, words := range want {
		for _, w := range words {
			s, ok := book.Decode.Symbol(w)
			require.True(t, ok, "word %q missing", w)
			assert.Equal(t, symbol, s)
		}
	}

	assert.Equal(t, Stats{Symbols: 3, Words: 8, ChunkSize: 3, SmallestChunk: 2}, book.Stats())
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name    string
		symbols string
		words   []string
		wantErr error
	}{
		{
			name:    "fewer words than symbols",
			symbols: "abc",
			words:   []string{"the", "who"},
			wantErr: ErrInsufficientWords,
		},
		{
			name:    "empty corpus",
			symbols: "abc",
			words:   nil,
			wantErr: ErrInsufficientWords,
		},
		{
			name:    "enough words but too few chunks",
			symbols: "abcd",
			words:   []string{"one", "two", "three", "four", "five"},
			wantErr: ErrInsufficientWords,
		},
		{
			name:    "duplicate word",
			symbols: "ab",
			words:   []string{"the", "who", "the"},
			wantErr: ErrDuplicateWord,
		},
		{
			name:    "empty word",
			symbols: "ab",
			words:   []string{"the", "", "who"},
			wantErr: ErrInvalidWord,
		},
		{
			name:    "word containing delimiter",
			symbols: "ab",
			words:   []string{"the", "moby dick"},
			wantErr: ErrInvalidWord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book, err := Build(newAlphabet(t, tt.symbols), tt.words)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, book)
		})
	}
}

func TestBuild_InsufficientWordsDetails(t *testing.T) {
	_, err := Build(newAlphabet(t, "abcd"), []string{"one", "two", "three", "four", "five"})

	var insufficient *InsufficientWordsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 4, insufficient.Symbols)
	assert.Equal(t, 5, insufficient.Words)
	assert.Equal(t, 3, insufficient.Chunks)
}

func TestBuild_NilAlphabet(t *testing.T) {
	_, err := Build(nil, mobyWords)
	assert.ErrorIs(t, err, ErrNilAlphabet)
}

func TestBuild_DoesNotAliasInput(t *testing.T) {
	words := append([]string(nil), mobyWords...)
	book, err := Build(newAlphabet(t, "abc"), words)
	require.NoError(t, err)

	words[0] = "changed"
	got, _ := book.Encode.Words('a')
	assert.Equal(t, "the", got[0])
}

func TestBuild_Deterministic(t *testing.T) {
	a := alphabet.Base64()
	words := generateWords(65 * 7)

	first, err := Build(a, words)
	require.NoError(t, err)
	second, err := Build(a, words)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuild_PartitionIsTotalAndDisjoint(t *testing.T) {
	for _, a := range []*alphabet.Alphabet{alphabet.Base64(), alphabet.Extended()} {
		for _, n := range []int{a.Len(), a.Len() * 2, a.Len() * 3, a.Len()*a.Len() - 1, a.Len()*a.Len() + 1} {
			t.Run(fmt.Sprintf("%s/%d", a.Name(), n), func(t *testing.T) {
				words := generateWords(n)
				book, err := Build(a, words)
				require.NoError(t, err)

				owner := make(map[string]rune)
				for _, symbol := range a.Symbols() {
					chunk, ok := book.Encode.Words(symbol)
					require.True(t, ok)
					require.NotEmpty(t, chunk, "symbol %q has no words", symbol)
					for _, w := range chunk {
						prev, dup := owner[w]
						require.False(t, dup, "word %q owned by %q and %q", w, prev, symbol)
						owner[w] = symbol
					}
				}

				assert.Len(t, owner, n, "every corpus word is assigned")
				assert.Equal(t, n, book.Decode.Len())
				for w, symbol := range owner {
					s, ok := book.Decode.Symbol(w)
					require.True(t, ok)
					assert.Equal(t, symbol, s)
				}
			})
		}
	}
}

func generateWords(n int) []string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("w%04d", i)
	}
	return words
}
