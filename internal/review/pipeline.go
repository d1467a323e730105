package review

import (
	"context"
	"fmt"
	"sync"

	"pr-review-bot/internal/aggregate"
	"pr-review-bot/internal/diff"
	"pr-review-bot/internal/github"
	"pr-review-bot/internal/observability"
	"pr-review-bot/internal/oracle"
	"pr-review-bot/internal/prompt"
	"pr-review-bot/internal/validate"
)

// Oracle is the one method the pipeline needs from the oracle client. A
// nil result means the chunk produced nothing usable; an empty slice means
// the oracle explicitly found nothing.
type Oracle interface {
	Submit(ctx context.Context, prompt string) []oracle.Finding
}

type Publisher interface {
	Publish(ctx context.Context, meta github.PRMetadata, sha string, cs []validate.Comment) (int, error)
}

type Pipeline struct {
	oracle    Oracle
	builder   *prompt.Builder
	validator *validate.Validator
	publisher Publisher
	logger    *observability.Logger

	excludes    []string
	maxComments int
}

func NewPipeline(
	o Oracle,
	b *prompt.Builder,
	v *validate.Validator,
	p Publisher,
	lg *observability.Logger,
	excludes []string,
	maxComments int,
) *Pipeline {

	return &Pipeline{
		oracle:      o,
		builder:     b,
		validator:   v,
		publisher:   p,
		logger:      lg,
		excludes:    excludes,
		maxComments: maxComments,
	}
}

// Run reviews one pull request: decompose the diff, dispatch each hunk to
// the oracle, validate, aggregate under the cap, publish. A chunk that
// fails yields nothing for that chunk and never aborts the run; only a
// diff parse failure or a batched-publish rejection is returned as an
// error. Returns the number of comments published.
//
// Hunks complete in scheduler order, so under the cap the surviving
// comments are the first to finish validation, not the first in file
// order.
func (p *Pipeline) Run(
	ctx context.Context,
	meta github.PRMetadata,
	sha string,
	rawDiff string,
) (int, error) {

	files, err := diff.Parse(rawDiff)
	if err != nil {
		return 0, fmt.Errorf("parse diff: %w", err)
	}

	agg := aggregate.New(p.maxComments, p.logger)

	var wg sync.WaitGroup

	for _, f := range files {

		// No destination path: deleted or otherwise unreviewable.
		if f.Path == "" {
			continue
		}

		if github.Excluded(f.Path, p.excludes) {
			p.logger.Debug("file excluded", "path", f.Path)
			continue
		}

		for _, h := range f.Hunks {
			wg.Add(1)
			go func(path string, h diff.Hunk) {
				defer wg.Done()
				p.reviewChunk(ctx, meta, path, h, agg)
			}(f.Path, h)
		}
	}

	wg.Wait()

	comments := agg.Comments()

	p.logger.Info("review aggregated",
		"repo", meta.FullRepo(),
		"pr", meta.PullNumber,
		"comments", len(comments),
		"discarded", agg.Discarded(),
	)

	return p.publisher.Publish(ctx, meta, sha, comments)
}

func (p *Pipeline) reviewChunk(
	ctx context.Context,
	meta github.PRMetadata,
	path string,
	h diff.Hunk,
	agg *aggregate.Aggregator,
) {

	pr := p.builder.Build(path, h, meta)

	findings := p.oracle.Submit(ctx, pr)
	if findings == nil {
		// Already logged by the client; this chunk contributes nothing.
		return
	}

	for _, f := range findings {
		if c, ok := p.validator.Validate(path, h, f); ok {
			agg.Add(c)
		}
	}
}
