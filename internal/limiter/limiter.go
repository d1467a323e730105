package limiter

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Limiter admits at most N concurrently executing calls. It knows nothing
// about what it guards; the same instance gates oracle calls and
// per-comment publish calls. Waiters are served in arrival order.
type Limiter struct {
	sem *semaphore.Weighted
	n   int
}

func New(n int) *Limiter {
	if n < 1 {
		n = 1
	}
	return &Limiter{
		sem: semaphore.NewWeighted(int64(n)),
		n:   n,
	}
}

// Acquire blocks until a slot is free or ctx is done.
func (l *Limiter) Acquire(ctx context.Context) error {
	return l.sem.Acquire(ctx, 1)
}

// Release must run on every exit path after a successful Acquire.
func (l *Limiter) Release() {
	l.sem.Release(1)
}

func (l *Limiter) Cap() int {
	return l.n
}
