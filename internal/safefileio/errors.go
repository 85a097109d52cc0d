// Package safefileio provides file I/O for wordlists, source files and
// ciphertexts with protection against symlink attacks, and classifies
// failures so callers can tell a missing file from other I/O problems.
package safefileio

import "errors"

var (
	// ErrInvalidFilePath indicates that the specified file path is invalid.
	ErrInvalidFilePath = errors.New("invalid file path")

	// ErrResourceNotFound indicates that the file, or the directory it should be written to, does not exist.
	ErrResourceNotFound = errors.New("file not found")

	// ErrIsSymlink indicates that the specified path is a symbolic link, which is not allowed.
	ErrIsSymlink = errors.New("path is a symbolic link")

	// ErrFileTooLarge indicates that the file is too large.
	ErrFileTooLarge = errors.New("file too large")

	// ErrFileExists indicates that the file already exists.
	ErrFileExists = errors.New("file exists")
)
