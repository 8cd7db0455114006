// internal/status/snapshot.go
package status

import "time"

// Snapshot represents exactly what the health endpoint is allowed to report.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	CacheTime        time.Time // zero until the first successful cycle
	BreakerFailures  int
	BreakerOpenUntil time.Time
	RegsLoaded       int
	RoundDecimals    int
}
