package publish

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"pr-review-bot/internal/dedup"
	"pr-review-bot/internal/github"
	"pr-review-bot/internal/limiter"
	"pr-review-bot/internal/observability"
	"pr-review-bot/internal/retry"
	"pr-review-bot/internal/validate"
)

const (
	ModePerComment = "per-comment"
	ModeBatched    = "batched"
)

// Publisher turns the capped comment list into comments on the pull
// request. Per-comment mode is the resilient default: one rejected comment
// is logged and skipped while the rest still publish. Batched mode trades
// that for atomicity: the host accepts the whole review or none of it.
type Publisher struct {
	comments github.CommentClient
	limiter  *limiter.Limiter
	dedup    dedup.Store
	logger   *observability.Logger
	mode     string

	// RetryWait is the initial backoff between per-comment post attempts.
	RetryWait time.Duration
}

func New(
	comments github.CommentClient,
	lim *limiter.Limiter,
	d dedup.Store,
	lg *observability.Logger,
	mode string,
) *Publisher {

	if mode != ModeBatched {
		mode = ModePerComment
	}

	return &Publisher{
		comments:  comments,
		limiter:   lim,
		dedup:     d,
		logger:    lg,
		mode:      mode,
		RetryWait: time.Second,
	}
}

// Publish posts cs against the given commit and returns how many comments
// made it to the host. In batched mode a host rejection is returned to the
// caller and nothing is published.
func (p *Publisher) Publish(
	ctx context.Context,
	meta github.PRMetadata,
	sha string,
	cs []validate.Comment,
) (int, error) {

	if len(cs) == 0 {
		return 0, nil
	}

	if p.mode == ModeBatched {
		return p.publishBatched(ctx, meta, sha, cs)
	}

	return p.publishPerComment(ctx, meta, sha, cs), nil
}

func (p *Publisher) publishBatched(
	ctx context.Context,
	meta github.PRMetadata,
	sha string,
	cs []validate.Comment,
) (int, error) {

	lines := make([]github.LineComment, 0, len(cs))
	for _, c := range cs {
		lines = append(lines, toLineComment(c))
	}

	if err := p.comments.CreateReview(ctx, meta, sha, lines); err != nil {
		return 0, fmt.Errorf("submit review batch: %w", err)
	}

	observability.CommentsPublished.Add(float64(len(lines)))

	return len(lines), nil
}

func (p *Publisher) publishPerComment(
	ctx context.Context,
	meta github.PRMetadata,
	sha string,
	cs []validate.Comment,
) int {

	var wg sync.WaitGroup
	var mu sync.Mutex
	published := 0

	// Keys claimed by this batch: Mark only lands after a successful
	// post, so identical comments in one batch need their own gate.
	inBatch := make(map[string]struct{}, len(cs))

	for _, c := range cs {

		key := fmt.Sprintf("%s:%d:%s", c.Path, c.Line, hash(c.Body))
		if _, dup := inBatch[key]; dup {
			continue
		}
		if p.dedup.Seen(ctx, key) {
			continue
		}
		inBatch[key] = struct{}{}

		wg.Add(1)
		go func(c validate.Comment, key string) {
			defer wg.Done()

			// Same admission gate as the oracle calls.
			if err := p.limiter.Acquire(ctx); err != nil {
				p.logger.Error("limiter acquire failed", "err", err)
				return
			}
			defer p.limiter.Release()

			err := retry.Do(ctx, 3, p.RetryWait, func() error {
				return p.comments.CreateReviewComment(
					ctx, meta, sha, toLineComment(c),
				)
			})

			if err != nil {
				p.logger.Error("comment publish failed",
					"path", c.Path,
					"line", c.Line,
					"err", err,
				)
				return
			}

			_ = p.dedup.Mark(ctx, key)
			observability.CommentsPublished.Inc()

			mu.Lock()
			published++
			mu.Unlock()
		}(c, key)
	}

	wg.Wait()

	return published
}

func toLineComment(c validate.Comment) github.LineComment {
	return github.LineComment{
		Body: c.Body,
		Path: c.Path,
		Line: c.Line,
		Side: "RIGHT",
	}
}

func hash(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:])
}
