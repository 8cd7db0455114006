// internal/cache/cache_test.go
package cache

import (
	"sync"
	"testing"
	"time"
)

func TestStore_EmptyUntilFirstCommit(t *testing.T) {
	s := New()
	if _, _, ok := s.Read(); ok {
		t.Fatal("ok=true before any commit")
	}
}

func TestStore_CommitReplacesWholesale(t *testing.T) {
	s := New()

	ts1 := time.Now()
	s.Commit(Snapshot{"a": {"x": 1}}, ts1)

	ts2 := ts1.Add(time.Second)
	s.Commit(Snapshot{"b": {"y": 2}}, ts2)

	snap, ts, ok := s.Read()
	if !ok {
		t.Fatal("ok=false after commit")
	}
	if !ts.Equal(ts2) {
		t.Fatalf("ts = %v, want %v", ts, ts2)
	}
	if _, stale := snap["a"]; stale {
		t.Fatal("old measurement survived a commit")
	}
	if snap["b"]["y"] != 2 {
		t.Fatalf("snapshot content wrong: %v", snap)
	}
}

func TestStore_TimestampMatchesData(t *testing.T) {
	// a reader must never see a timestamp that belongs to a different
	// snapshot than the data it got
	s := New()
	base := time.Unix(1000, 0)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 1000; i++ {
			s.Commit(Snapshot{"m": {"seq": float64(i)}}, base.Add(time.Duration(i)*time.Second))
		}
	}()

	for i := 0; i < 1000; i++ {
		snap, ts, ok := s.Read()
		if !ok {
			continue
		}
		seq := int(snap["m"]["seq"])
		want := base.Add(time.Duration(seq) * time.Second)
		if !ts.Equal(want) {
			t.Fatalf("ts %v does not match snapshot seq %d", ts, seq)
		}
	}
	wg.Wait()
}
