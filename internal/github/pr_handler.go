package github

import (
	"context"
	"encoding/json"
)

func (h *WebhookHandler) handlePullRequest(ctx context.Context, payload []byte) {

	var event PullRequestEvent

	if err := json.Unmarshal(payload, &event); err != nil {
		h.logger.Error("failed to parse pr event", "error", err)
		return
	}

	if event.Action != "opened" && event.Action != "synchronize" {
		h.logger.Info("pr action ignored", "action", event.Action)
		return
	}

	if event.PullRequest.Draft {
		h.logger.Info("draft pr skipped",
			"repo", event.Repository.FullName,
			"pr", event.PullRequest.Number,
		)
		return
	}

	trigger := ReviewTrigger{
		Meta:      event.Metadata(),
		Action:    event.Action,
		BeforeSHA: event.Before,
		AfterSHA:  event.After,
	}

	if err := h.queue.Enqueue(ctx, trigger); err != nil {
		h.logger.Error("failed to enqueue review job",
			"error", err,
			"repo", event.Repository.FullName,
			"pr", event.PullRequest.Number,
		)
		return
	}

	h.logger.Info("review job enqueued",
		"repo", event.Repository.FullName,
		"pr", event.PullRequest.Number,
		"action", event.Action,
	)
}
