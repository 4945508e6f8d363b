// Package fsutil reads inputs and writes outputs for the codesurface CLI.
// Outputs are written atomically so an interrupted run never leaves a
// truncated document behind.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Sentinel errors for error categorization via errors.Is.
var (
	ErrNotFound         = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIsDirectory      = errors.New("path is a directory")
	ErrTooLarge         = errors.New("file too large")
)

// MaxFileSize bounds the inputs ReadFile accepts.
const MaxFileSize int64 = 64 << 20

// ReadFile reads path, classifying common failures with the sentinel errors.
func ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if stat.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, path, stat.Size())
	}

	//nolint:gosec // Path comes from the command line.
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, classify(path, err)
	}
	return content, nil
}

func classify(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
