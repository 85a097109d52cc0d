// Package corpus derives the ordered, deduplicated word list used as cover
// text from an arbitrary UTF-8 source text.
package corpus

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/isseis/go-ishmael/internal/safefileio"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalidUTF8 indicates the source text is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("source text is not valid UTF-8")

// stripped holds the characters removed from every word: ASCII punctuation
// plus curly double quotes and the em-dash. Curly apostrophes are kept, so
// "whale’s" and "whales" stay distinct words.
const stripped = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~" + "“”—"

// Corpus is an ordered list of distinct, non-empty words. Order decides
// which symbol each word is assigned to, so it must be preserved.
type Corpus struct {
	source string
	words  []string
}

// New wraps an already derived word list. The words are copied.
func New(source string, words []string) *Corpus {
	owned := make([]string, len(words))
	copy(owned, words)
	return &Corpus{source: source, words: owned}
}

// FromText derives a corpus from text: lowercase, split on whitespace,
// strip punctuation, drop empty words and keep the first occurrence of
// every word.
func FromText(source, text string) *Corpus {
	lower := cases.Lower(language.Und).String(text)
	fields := strings.Fields(lower)

	seen := make(map[string]struct{}, len(fields))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := stripPunctuation(f)
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}

	return &Corpus{source: source, words: words}
}

func stripPunctuation(word string) string {
	if !strings.ContainsAny(word, stripped) {
		return word
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(stripped, r) {
			return -1
		}
		return r
	}, word)
}

// Load reads the source text at path and derives a corpus from it.
// A missing file fails with safefileio.ErrResourceNotFound.
func Load(path string) (*Corpus, error) {
	content, err := safefileio.SafeReadFile(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidUTF8, path)
	}
	return FromText(path, string(content)), nil
}

// Source returns where the corpus came from, usually a file path.
func (c *Corpus) Source() string {
	return c.source
}

// Words returns a copy of the words in corpus order.
func (c *Corpus) Words() []string {
	out := make([]string, len(c.words))
	copy(out, c.words)
	return out
}

// Len returns the number of distinct words.
func (c *Corpus) Len() int {
	return len(c.words)
}
