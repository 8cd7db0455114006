// internal/status/encode.go
package status

import "time"

// Encode converts a Snapshot into the health document served over HTTP.
// Timestamps are unix seconds; cache_age_s is null before the first commit.
// No IO. No side effects.
func Encode(s Snapshot, now time.Time) map[string]any {
	var age any
	var cacheTS float64
	if !s.CacheTime.IsZero() {
		cacheTS = unixSeconds(s.CacheTime)
		age = now.Sub(s.CacheTime).Seconds()
	}

	var openUntil float64
	if !s.BreakerOpenUntil.IsZero() {
		openUntil = unixSeconds(s.BreakerOpenUntil)
	}

	return map[string]any{
		"cache_age_s":        age,
		"cache_ts":           cacheTS,
		"breaker_failures":   s.BreakerFailures,
		"breaker_open_until": openUntil,
		"regs_loaded":        s.RegsLoaded,
		"round_decimals":     s.RoundDecimals,
	}
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
