// internal/poller/breaker_test.go
package poller

import (
	"testing"
	"time"
)

func TestBreaker_OpensAtLimit(t *testing.T) {
	now := time.Now()
	b := NewBreaker(3, 30*time.Second)

	if opened := b.Failure(now); opened {
		t.Fatal("opened after 1 failure")
	}
	if opened := b.Failure(now); opened {
		t.Fatal("opened after 2 failures")
	}
	if opened := b.Failure(now); !opened {
		t.Fatal("did not open after 3 failures")
	}

	if b.Allow(now) {
		t.Fatal("allowed while open")
	}
	if b.Allow(now.Add(29 * time.Second)) {
		t.Fatal("allowed before the window elapsed")
	}
	if !b.Allow(now.Add(30 * time.Second)) {
		t.Fatal("not allowed at the deadline")
	}
}

func TestBreaker_SuccessResetsCount(t *testing.T) {
	now := time.Now()
	b := NewBreaker(3, 30*time.Second)

	b.Failure(now)
	b.Failure(now)
	b.Success()

	if failures, _ := b.State(); failures != 0 {
		t.Fatalf("failures = %d after success, want 0", failures)
	}

	// counting starts over
	b.Failure(now)
	b.Failure(now)
	if opened := b.Failure(now); !opened {
		t.Fatal("did not open after 3 fresh failures")
	}
}

func TestBreaker_ReopensOnFailedProbe(t *testing.T) {
	now := time.Now()
	b := NewBreaker(1, 10*time.Second)

	b.Failure(now)
	probe := now.Add(11 * time.Second)
	if !b.Allow(probe) {
		t.Fatal("probe not allowed after window")
	}
	if opened := b.Failure(probe); !opened {
		t.Fatal("failed probe did not re-open")
	}
	if b.Allow(probe.Add(9 * time.Second)) {
		t.Fatal("allowed inside the fresh window")
	}
}
