package mathmd

import "runtime"

// Worker sizing constants.
const (
	// MinWorkers ensures at least one worker is available.
	MinWorkers = 1

	// MaxWorkers caps parallel file jobs; beyond this, disk I/O dominates.
	MaxWorkers = 32
)

// ResolveWorkers determines the number of parallel normalization workers.
// Priority: explicit workers > GOMAXPROCS (adjusted by automaxprocs for containers).
// Exported for use by servers and CLIs.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return min(workers, MaxWorkers)
	}

	return min(max(runtime.GOMAXPROCS(0), MinWorkers), MaxWorkers)
}
