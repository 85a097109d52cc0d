// Package transcode converts arbitrary binary content to and from padded
// standard base64 text, whose symbols are exactly the base64 alphabet the
// substitution codec partitions.
package transcode

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrMalformedTranscoding indicates text that is not valid padded base64.
var ErrMalformedTranscoding = errors.New("malformed base64 text")

// MalformedError reports where decoding failed.
type MalformedError struct {
	Offset int64 // Byte offset of the first invalid input byte
	Err    error // The underlying decoder error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%v at offset %d: %v", ErrMalformedTranscoding, e.Offset, e.Err)
}

// Is reports ErrMalformedTranscoding as matching.
func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformedTranscoding
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// encoding is strict so that non-canonical padding bits are rejected.
var encoding = base64.StdEncoding.Strict()

// ToText encodes data as padded base64. It accepts every input, including
// an empty one, which encodes to the empty string.
func ToText(data []byte) string {
	return encoding.EncodeToString(data)
}

// ToBytes decodes padded base64 text. Bad length, bad padding or characters
// outside the base64 alphabet (including whitespace) fail with a
// *MalformedError matching ErrMalformedTranscoding.
func ToBytes(text string) ([]byte, error) {
	// The standard decoder skips '\r' and '\n'; the ciphertext format never
	// produces them, so their presence means corruption.
	for i := 0; i < len(text); i++ {
		if text[i] == '\r' || text[i] == '\n' {
			return nil, &MalformedError{Offset: int64(i), Err: base64.CorruptInputError(i)}
		}
	}

	data, err := encoding.DecodeString(text)
	if err != nil {
		var corrupt base64.CorruptInputError
		if errors.As(err, &corrupt) {
			return nil, &MalformedError{Offset: int64(corrupt), Err: err}
		}
		return nil, &MalformedError{Err: err}
	}
	return data, nil
}
