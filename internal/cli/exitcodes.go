package cli

import (
	"errors"

	"github.com/yaklabco/gifdec/internal/configloader"
	"github.com/yaklabco/gifdec/pkg/export"
	"github.com/yaklabco/gifdec/pkg/fsutil"
	"github.com/yaklabco/gifdec/pkg/runner"
)

// Exit codes for gifdec.
const (
	// ExitSuccess indicates every file decoded.
	ExitSuccess = 0

	// ExitDecodeFailures indicates at least one file could not be decoded.
	ExitDecodeFailures = 1

	// ExitWarnings indicates decode warnings with --fail-on-warnings.
	ExitWarnings = 2

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
	// ErrDecodeFailures is returned when one or more files failed to decode.
	ErrDecodeFailures = errors.New("one or more files failed to decode")

	// ErrWarningsFound is returned when warnings are treated as failures.
	ErrWarningsFound = errors.New("decode warnings found")

	// ErrInvalidUsage wraps flag and argument errors.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrConfig wraps configuration loading errors.
	ErrConfig = errors.New("configuration error")
)

// ExitCodeFromResult determines the exit code of an inspect run.
func ExitCodeFromResult(result *runner.Result, failOnWarnings bool) int {
	switch {
	case result.HasFailures():
		return ExitDecodeFailures
	case failOnWarnings && result.HasWarnings():
		return ExitWarnings
	default:
		return ExitSuccess
	}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrDecodeFailures):
		return ExitDecodeFailures
	case errors.Is(err, ErrWarningsFound):
		return ExitWarnings
	case errors.Is(err, ErrInvalidUsage),
		errors.Is(err, export.ErrUnknownFilter),
		errors.Is(err, export.ErrInvalidScale):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrTooLarge):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// IsSilent reports whether err only signals an exit code and needs no log line.
func IsSilent(err error) bool {
	return errors.Is(err, ErrDecodeFailures) || errors.Is(err, ErrWarningsFound)
}
