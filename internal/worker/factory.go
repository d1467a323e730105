package worker

import "pr-review-bot/internal/config"

func NewQueue(cfg *config.Config) Queue {

	if cfg.QueueType == "redis" {
		return NewRedisQueue(
			cfg.RedisAddr,
			"pr_review_jobs",
		)
	}

	return NewMemoryQueue(100)
}
