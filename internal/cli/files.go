package cli

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/isseis/go-ishmael/internal/safefileio"
	"github.com/isseis/go-ishmael/internal/session"
)

const outputFilePerm = 0o600

// FileCodec encodes and decodes files through a session.
type FileCodec struct {
	Session *session.Session
	Logger  *slog.Logger
	Force   bool // Overwrite existing output files

	// MaxCiphertext caps the size of an encoded file. Zero, or anything above
	// safefileio.MaxFileSize, means safefileio.MaxFileSize, the largest file
	// Read accepts.
	MaxCiphertext int64
}

// Encode reads the file at src, encodes it and writes the ciphertext to dst.
func (f *FileCodec) Encode(src, dst string) error {
	data, err := f.Read(src)
	if err != nil {
		return err
	}
	ciphertext, err := f.EncodeBytes(src, data)
	if err != nil {
		return err
	}
	return f.Write(dst, []byte(ciphertext))
}

// Decode reads the ciphertext at src, decodes it and writes the bytes to dst.
func (f *FileCodec) Decode(src, dst string) error {
	ciphertext, err := f.Read(src)
	if err != nil {
		return err
	}
	data, err := f.DecodeBytes(src, ciphertext)
	if err != nil {
		return err
	}
	return f.Write(dst, data)
}

// Read loads a whole file.
func (f *FileCodec) Read(path string) ([]byte, error) {
	return safefileio.SafeReadFile(path)
}

// EncodeBytes encodes file content read from src. It fails with
// ErrCiphertextTooLarge rather than produce a ciphertext Read would refuse.
func (f *FileCodec) EncodeBytes(src string, data []byte) (string, error) {
	ciphertext, err := f.Session.EncodeFile(data)
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", src, err)
	}
	if limit := f.ciphertextLimit(); int64(len(ciphertext)) > limit {
		return "", fmt.Errorf("encoding %s: %w: %d bytes, limit %d", src, ErrCiphertextTooLarge, len(ciphertext), limit)
	}
	f.logger().Info("File encoded", "source", src, "bytes", len(data), "wordlist", f.Session.Wordlist())
	return ciphertext, nil
}

// DecodeBytes decodes a ciphertext read from src.
func (f *FileCodec) DecodeBytes(src string, ciphertext []byte) ([]byte, error) {
	if !utf8.Valid(ciphertext) {
		return nil, fmt.Errorf("decoding %s: %w", src, ErrInvalidCiphertext)
	}
	data, err := f.Session.DecodeFile(string(ciphertext))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", src, err)
	}
	f.logger().Info("File decoded", "source", src, "bytes", len(data), "content_type", DetectContentType(data))
	return data, nil
}

// Write stores content at path, refusing to replace an existing file unless
// Force is set.
func (f *FileCodec) Write(path string, content []byte) error {
	if f.Force {
		return safefileio.SafeOverwriteFile(path, content, outputFilePerm)
	}
	return safefileio.SafeWriteFile(path, content, outputFilePerm)
}

func (f *FileCodec) ciphertextLimit() int64 {
	if f.MaxCiphertext <= 0 || f.MaxCiphertext > safefileio.MaxFileSize {
		return safefileio.MaxFileSize
	}
	return f.MaxCiphertext
}

func (f *FileCodec) logger() *slog.Logger {
	if f.Logger == nil {
		return slog.Default()
	}
	return f.Logger
}

// DetectContentType guesses the media type of recovered bytes. Decoding with
// the wrong wordlist normally fails outright, but when it does not the
// result tends to show up as application/octet-stream.
func DetectContentType(data []byte) string {
	return mimetype.Detect(data).String()
}
