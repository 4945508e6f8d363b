package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/yaklabco/codesurface/internal/configloader"
	"github.com/yaklabco/codesurface/pkg/fsutil"
)

// Exit codes for codesurface.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitDifferences indicates a diff run with --exit-code found changes.
	ExitDifferences = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrDifferencesFound signals changes under --exit-code. It carries no
	// failure and is not logged.
	ErrDifferencesFound = errors.New("differences found")

	// ErrUsage marks command-line mistakes.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks configuration failures.
	ErrConfig = errors.New("load configuration")
)

// usageError tags err as a command-line mistake.
func usageError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrUsage, err)
}

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError
	var pathErr *fs.PathError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrDifferencesFound):
		return ExitDifferences
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrTooLarge),
		errors.As(err, &pathErr):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
