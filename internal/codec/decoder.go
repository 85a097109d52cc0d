package codec

import "strings"

// Split breaks a ciphertext into tokens on the exact delimiter. Runs of
// delimiters are not collapsed and yield empty tokens. The empty ciphertext
// has no tokens.
func Split(ciphertext string) []string {
	if ciphertext == "" {
		return nil
	}
	return strings.Split(ciphertext, Delimiter)
}

// Decode maps every token of ciphertext back to its symbol.
// The result has one symbol per token and depends only on the inputs.
func Decode(ciphertext string, table *DecodeTable) ([]rune, error) {
	tokens := Split(ciphertext)
	symbols := make([]rune, len(tokens))
	for i, tok := range tokens {
		s, ok := table.symbols[tok]
		if !ok {
			return nil, &UnknownWordError{Word: tok, Position: i}
		}
		symbols[i] = s
	}
	return symbols, nil
}
