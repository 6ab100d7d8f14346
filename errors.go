package mathmd

import "errors"

// Sentinel errors for library operations.
var (
	// ErrInvalidSeparator is returned by ValidateSeparator for markers other
	// than three or more dashes with optional colons at either end.
	ErrInvalidSeparator = errors.New("invalid table separator")
)
