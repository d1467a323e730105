package worker

import (
	"context"
	"errors"
	"time"

	"pr-review-bot/internal/budget"
	"pr-review-bot/internal/github"
	"pr-review-bot/internal/observability"
	"pr-review-bot/internal/ratelimit"
	"pr-review-bot/internal/review"
)

// projectedJobCostUSD is the soft per-job estimate the budget guard checks
// before any oracle call is made.
const projectedJobCostUSD = 0.05

type Processor struct {
	queue       Queue
	client      github.Client
	pipeline    *review.Pipeline
	rateLimiter *ratelimit.Limiter
	budget      *budget.Guard
	logger      *observability.Logger
}

func NewProcessor(
	q Queue,
	c github.Client,
	p *review.Pipeline,
	rl *ratelimit.Limiter,
	bg *budget.Guard,
	lg *observability.Logger,
) *Processor {

	return &Processor{
		queue:       q,
		client:      c,
		pipeline:    p,
		rateLimiter: rl,
		budget:      bg,
		logger:      lg,
	}
}

func (p *Processor) Start(ctx context.Context) {

	go func() {
		for {
			job, err := p.queue.Pop(ctx)
			if err != nil {
				if errors.Is(ctx.Err(), context.Canceled) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
					return
				}
				continue
			}

			p.handle(ctx, job)
		}
	}()
}

func (p *Processor) handle(parent context.Context, j Job) {

	ctx, cancel := context.WithTimeout(parent, 5*time.Minute)
	defer cancel()

	meta := github.PRMetadata{
		Owner:       j.Owner,
		Repo:        j.Repo,
		PullNumber:  j.PR,
		Title:       j.Title,
		Description: j.Description,
	}

	if err := p.rateLimiter.Get(meta.FullRepo()).Wait(ctx); err != nil {
		p.logger.Error("rate limiter wait failed", "err", err)
		return
	}

	if p.budget.Enabled() {
		ok, reason, err := p.budget.Allow(ctx, meta.FullRepo(), j.PR, projectedJobCostUSD, time.Now())
		if err != nil {
			p.logger.Error("budget check failed", "err", err)
			return
		}
		if !ok {
			observability.BudgetBlocks.WithLabelValues("job").Inc()
			p.logger.Info("review blocked by budget",
				"repo", meta.FullRepo(),
				"pr", j.PR,
				"reason", reason,
			)
			return
		}
	}

	rawDiff, err := p.fetchDiff(ctx, meta, j)
	if err != nil {
		p.logger.Error("fetch diff failed",
			"repo", meta.FullRepo(),
			"pr", j.PR,
			"err", err,
		)
		return
	}

	sha, err := p.client.LatestCommitSHA(ctx, meta)
	if err != nil {
		p.logger.Error("resolve commit failed",
			"repo", meta.FullRepo(),
			"pr", j.PR,
			"err", err,
		)
		return
	}

	published, err := p.pipeline.Run(ctx, meta, sha, rawDiff)
	if err != nil {
		p.logger.Error("review failed",
			"repo", meta.FullRepo(),
			"pr", j.PR,
			"err", err,
		)
		return
	}

	if err := p.budget.Record(ctx, meta.FullRepo(), j.PR, projectedJobCostUSD, time.Now()); err != nil {
		p.logger.Error("budget record failed", "err", err)
	}

	p.logger.Info("review completed",
		"repo", meta.FullRepo(),
		"pr", j.PR,
		"published", published,
	)
}

// fetchDiff picks the diff source by trigger: a fresh PR reviews the full
// diff against base, an update reviews only the pushed commit range.
func (p *Processor) fetchDiff(ctx context.Context, meta github.PRMetadata, j Job) (string, error) {

	if j.Action == "synchronize" && j.BeforeSHA != "" && j.AfterSHA != "" {
		return p.client.CompareDiff(ctx, meta, j.BeforeSHA, j.AfterSHA)
	}

	return p.client.GetPRDiff(ctx, meta)
}
