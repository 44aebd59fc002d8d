package workers

import (
	"os"
	"runtime"
	"strconv"
)

// Count returns the number of workers to use for a workload.
// It respects container CPU limits via GOMAXPROCS (Go 1.19+).
//
// The multiplier adjusts for workload characteristics:
//   - 1.0 for CPU-bound work
//   - 2.0 for I/O-bound work (such as waiting on ffmpeg subprocesses)
//
// The limit parameter caps the worker count; use 0 for no cap.
//
// Can be overridden with the EXTRACT_WORKERS environment variable.
func Count(multiplier float64, limit int) int {
	if override := os.Getenv("EXTRACT_WORKERS"); override != "" {
		if count, err := strconv.Atoi(override); err == nil && count > 0 {
			if limit > 0 && count > limit {
				return limit
			}
			return count
		}
	}

	// GOMAXPROCS tracks the container CPU limit, runtime.NumCPU does not.
	available := runtime.GOMAXPROCS(0)

	count := int(float64(available) * multiplier)
	if count < 1 {
		count = 1
	}
	if limit > 0 && count > limit {
		count = limit
	}

	return count
}

// ForCPU returns the worker count for CPU-bound work (1 per CPU),
// capped at limit.
func ForCPU(limit int) int {
	return Count(1.0, limit)
}

// ForSubprocess returns the worker count for work that mostly waits on
// external processes (2 per CPU), capped at limit.
func ForSubprocess(limit int) int {
	return Count(2.0, limit)
}
