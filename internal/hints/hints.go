// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and the user config location that was searched.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	userDir := "go-mathmd" + string(filepath.Separator)
	for _, p := range searchedPaths {
		if strings.Contains(p, userDir) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForMultipleInputs returns hints when several files would go to stdout.
func ForMultipleInputs() string {
	return format("use --output DIR or --in-place to normalize several files")
}

// ForNoInput returns hints when no input was given and stdin is a terminal.
func ForNoInput() string {
	return formatHints([]string{
		"pass files or directories",
		"use - to read stdin",
		"or set input.defaultDir in the config",
	})
}

// ForNonCanonical returns hints after check found files that would change.
func ForNonCanonical() string {
	return format("run 'mathmd --in-place' on the listed files to normalize them")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
