package main

import (
	"errors"
	"os"

	mathmd "github.com/alnah/go-mathmd"
	"github.com/alnah/go-mathmd/internal/config"
)

// Exit codes for mathmd CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess      = 0 // All inputs normalized (or already canonical)
	ExitGeneral      = 1 // General/unexpected error
	ExitUsage        = 2 // Invalid flags, config, or validation
	ExitIO           = 3 // File not found, permission denied
	ExitNotCanonical = 4 // check found files that would change
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrNotCanonical) {
		return ExitNotCanonical
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrConflictingOutput) ||
		errors.Is(err, ErrMultipleInputs) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, mathmd.ErrInvalidSeparator) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	return ExitGeneral
}
