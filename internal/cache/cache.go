// internal/cache/cache.go

// Package cache holds the latest decoded snapshot.
package cache

import (
	"sync"
	"time"
)

// Snapshot maps measurement name to its decoded fields. A snapshot is
// immutable once committed; it is replaced wholesale, never patched.
type Snapshot map[string]map[string]float64

// Store is the single shared-mutable object in the process. The lock guards
// (snapshot, timestamp) as one unit so a reader never sees a timestamp that
// does not belong to the data.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot
	ts   time.Time
}

func New() *Store { return &Store{} }

// Commit atomically replaces the visible snapshot and its commit time.
// The caller must not mutate snap afterwards.
func (s *Store) Commit(snap Snapshot, ts time.Time) {
	s.mu.Lock()
	s.snap = snap
	s.ts = ts
	s.mu.Unlock()
}

// Read returns the current snapshot and its commit time. ok is false until
// the first commit. The returned snapshot must be treated as read-only.
func (s *Store) Read() (snap Snapshot, ts time.Time, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.ts, !s.ts.IsZero()
}
