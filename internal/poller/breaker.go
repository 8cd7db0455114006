// internal/poller/breaker.go
package poller

import (
	"sync"
	"time"
)

// Breaker counts consecutive cycle failures and suppresses device contact
// for a cooldown window once the limit is hit. The poller owns all writes;
// the health endpoint reads State concurrently, so a mutex guards the two
// fields as a unit.
type Breaker struct {
	mu        sync.Mutex
	limit     int
	openFor   time.Duration
	failures  int
	openUntil time.Time
}

func NewBreaker(limit int, openFor time.Duration) *Breaker {
	return &Breaker{limit: limit, openFor: openFor}
}

// Allow reports whether a cycle may contact the device at now. The first
// tick at or past the deadline is the probe; there is no half-open state.
func (b *Breaker) Allow(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !now.Before(b.openUntil)
}

// Success resets the failure count. A single success fully closes the
// breaker. The old open-until timestamp is kept for diagnostics; it is in
// the past by the time a success is possible.
func (b *Breaker) Success() {
	b.mu.Lock()
	b.failures = 0
	b.mu.Unlock()
}

// Failure records one failed cycle and returns true when this failure
// opened (or re-opened) the breaker.
func (b *Breaker) Failure(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures++
	if b.failures >= b.limit {
		b.openUntil = now.Add(b.openFor)
		return true
	}
	return false
}

// State returns the failure count and open-until deadline. It may be stale
// by one tick relative to a concurrent cycle; that is acceptable.
func (b *Breaker) State() (failures int, openUntil time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures, b.openUntil
}
