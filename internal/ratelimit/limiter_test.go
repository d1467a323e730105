package ratelimit

import (
	"testing"
	"time"
)

func TestLimiter_ReusesEntryPerRepo(t *testing.T) {
	l := New(1, 1)

	first := l.Get("repo-a")
	second := l.Get("repo-a")

	if first != second {
		t.Fatalf("expected the same limiter for the same repo")
	}
}

func TestLimiter_PrunesExpiredEntries(t *testing.T) {
	l := New(1, 1)
	l.ttl = 5 * time.Millisecond

	if l.Get("repo-a") == nil {
		t.Fatalf("expected limiter instance")
	}

	time.Sleep(10 * time.Millisecond)
	l.lastPruned = time.Now().Add(-2 * time.Minute)

	// Trigger prune and new allocation.
	if l.Get("repo-b") == nil {
		t.Fatalf("expected limiter instance")
	}

	if _, ok := l.limiters["repo-a"]; ok {
		t.Fatalf("expected stale limiter to be pruned")
	}
}
