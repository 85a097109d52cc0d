package safefileio

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
)

// MaxFileSize is the maximum allowed file size for SafeReadFile (128 MB).
// Everything is buffered in memory, and a ciphertext is several times larger
// than the file it encodes.
const MaxFileSize = 128 * 1024 * 1024

// FileSystem is an interface that abstracts file system operations
type FileSystem interface {
	OpenFile(name string, flag int, perm os.FileMode) (File, error)
}

// File is an interface that abstracts file operations
type File interface {
	io.Reader
	io.Writer
	Close() error
	Stat() (os.FileInfo, error)
}

// osFS implements FileSystem using the local disk
var defaultFS FileSystem = osFS{}

type osFS struct{}

func (osFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	// #nosec G304 - The path is validated after opening to prevent TOCTOU attacks
	return os.OpenFile(name, flag, perm)
}

// SafeReadFile reads a whole file after refusing symlinks and non-regular
// files. A missing file fails with ErrResourceNotFound.
func SafeReadFile(filePath string) ([]byte, error) {
	return safeReadFileWithFS(filePath, defaultFS)
}

func safeReadFileWithFS(filePath string, fsys FileSystem) (content []byte, err error) {
	absPath, err := absolutePath(filePath)
	if err != nil {
		return nil, err
	}

	file, err := fsys.OpenFile(absPath, os.O_RDONLY|syscall.O_NOFOLLOW, 0)
	if err != nil {
		return nil, classifyOpenError(absPath, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Warn("Failed to close file", "path", absPath, "error", closeErr)
		}
	}()

	if err := verifyPathComponents(absPath); err != nil {
		return nil, err
	}

	info, err := validateFile(file, absPath)
	if err != nil {
		return nil, err
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: %s", ErrFileTooLarge, absPath)
	}

	content, err = io.ReadAll(io.LimitReader(file, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", absPath, err)
	}
	if int64(len(content)) > MaxFileSize {
		return nil, fmt.Errorf("%w: %s", ErrFileTooLarge, absPath)
	}

	return content, nil
}

// SafeWriteFile creates filePath and writes content to it. It fails with
// ErrFileExists when the file already exists, and with ErrResourceNotFound
// when the parent directory does not exist.
func SafeWriteFile(filePath string, content []byte, perm os.FileMode) error {
	return safeWriteFileWithFS(filePath, content, perm, os.O_EXCL, defaultFS)
}

// SafeOverwriteFile is like SafeWriteFile but truncates an existing regular file.
// Symlinks are still refused.
func SafeOverwriteFile(filePath string, content []byte, perm os.FileMode) error {
	return safeWriteFileWithFS(filePath, content, perm, os.O_TRUNC, defaultFS)
}

func safeWriteFileWithFS(filePath string, content []byte, perm os.FileMode, mode int, fsys FileSystem) (err error) {
	absPath, err := absolutePath(filePath)
	if err != nil {
		return err
	}

	file, err := fsys.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|mode|syscall.O_NOFOLLOW, perm)
	if err != nil {
		return classifyOpenError(absPath, err)
	}

	// Ensure the file is closed on error
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", closeErr)
		}
	}()

	if err := verifyPathComponents(absPath); err != nil {
		return err
	}

	if _, err := validateFile(file, absPath); err != nil {
		return err
	}

	if _, err = file.Write(content); err != nil {
		return fmt.Errorf("failed to write to %s: %w", absPath, err)
	}

	return nil
}

func absolutePath(filePath string) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidFilePath)
	}
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFilePath, err)
	}
	return absPath, nil
}

func classifyOpenError(absPath string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrResourceNotFound, absPath)
	case errors.Is(err, fs.ErrExist):
		return fmt.Errorf("%w: %s", ErrFileExists, absPath)
	case isNoFollowError(err):
		return fmt.Errorf("%w: %s", ErrIsSymlink, absPath)
	default:
		return fmt.Errorf("failed to open %s: %w", absPath, err)
	}
}

// isNoFollowError checks if the error indicates we tried to open a symlink
func isNoFollowError(err error) bool {
	var e *os.PathError
	if !errors.As(err, &e) {
		return false
	}
	return errors.Is(e.Err, syscall.ELOOP) || errors.Is(e.Err, syscall.EMLINK)
}

// verifyPathComponents checks if any directory above absPath is a symlink.
// This is called after opening the file to prevent TOCTOU attacks.
func verifyPathComponents(absPath string) error {
	current := filepath.Dir(absPath)
	for {
		parent := filepath.Dir(current)
		if parent == current {
			break // Reached root directory
		}

		fi, err := os.Lstat(current)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return fmt.Errorf("failed to stat %s: %w", current, err)
		}

		if fi.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("%w: %s", ErrIsSymlink, current)
		}

		current = parent
	}

	return nil
}

// validateFile checks that the opened file is a regular file.
// The descriptor is used so the check applies to what was actually opened.
func validateFile(file File, filePath string) (os.FileInfo, error) {
	fileInfo, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	if !fileInfo.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: not a regular file: %s", ErrInvalidFilePath, filePath)
	}

	return fileInfo, nil
}
