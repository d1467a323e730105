package worker

import (
	"context"

	"pr-review-bot/internal/github"
)

// Adapter implements github.JobQueue so the github package stays ignorant
// of the worker package.
type Adapter struct {
	q Queue
}

func NewAdapter(q Queue) *Adapter {
	return &Adapter{q: q}
}

func (a *Adapter) Enqueue(ctx context.Context, t github.ReviewTrigger) error {
	return a.q.Push(ctx, Job{
		Owner:       t.Meta.Owner,
		Repo:        t.Meta.Repo,
		PR:          t.Meta.PullNumber,
		Title:       t.Meta.Title,
		Description: t.Meta.Description,
		Action:      t.Action,
		BeforeSHA:   t.BeforeSHA,
		AfterSHA:    t.AfterSHA,
	})
}
