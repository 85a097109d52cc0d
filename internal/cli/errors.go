// Package cli implements the two front ends of the codec: the batch
// encode/decode commands and the interactive numbered menu.
package cli

import "errors"

// Error definitions
var (
	// ErrRetriesExhausted is returned when every attempt allowed by a RetryPolicy failed
	ErrRetriesExhausted = errors.New("giving up after repeated attempts")
	// ErrInvalidChoice is returned for a menu answer that is not a listed number
	ErrInvalidChoice = errors.New("the entered number does not correspond to a choice")
	// ErrNotANumber is returned for a menu answer that is not a number
	ErrNotANumber = errors.New("please enter a valid number")
	// ErrCiphertextTooLarge is returned when a ciphertext would exceed the size that can be read back for decoding
	ErrCiphertextTooLarge = errors.New("ciphertext too large to decode later")
	// ErrInvalidCiphertext is returned when a ciphertext file is not UTF-8 text
	ErrInvalidCiphertext = errors.New("ciphertext is not valid UTF-8")
)
