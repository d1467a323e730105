package aggregate

import (
	"sync"

	"pr-review-bot/internal/observability"
	"pr-review-bot/internal/validate"
)

// Aggregator collects validated comments across chunks and enforces the
// run-wide volume cap. Chunks finish on separate goroutines, so collection
// order is completion order, not diff order; the cap keeps the first max
// comments to arrive.
type Aggregator struct {
	mu        sync.Mutex
	comments  []validate.Comment
	max       int
	discarded int

	capOnce sync.Once
	logger  *observability.Logger
}

func New(max int, lg *observability.Logger) *Aggregator {
	if max < 1 {
		max = 1
	}
	return &Aggregator{
		max:    max,
		logger: lg,
	}
}

// Add returns false when the cap discarded the comment.
func (a *Aggregator) Add(c validate.Comment) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.comments) >= a.max {
		a.discarded++
		observability.CommentsDiscarded.Inc()
		a.capOnce.Do(func() {
			a.logger.Info("comment cap reached, discarding further findings",
				"max", a.max,
			)
		})
		return false
	}

	a.comments = append(a.comments, c)
	return true
}

func (a *Aggregator) Comments() []validate.Comment {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]validate.Comment, len(a.comments))
	copy(out, a.comments)
	return out
}

func (a *Aggregator) Discarded() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.discarded
}
