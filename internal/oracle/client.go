package oracle

import (
	"context"
	"time"

	"pr-review-bot/internal/cost"
	"pr-review-bot/internal/limiter"
	"pr-review-bot/internal/observability"
)

// Client issues prompts through the shared concurrency limiter and turns
// raw oracle replies into candidate findings.
type Client struct {
	provider Provider
	limiter  *limiter.Limiter
	logger   *observability.Logger
}

func NewClient(p Provider, lim *limiter.Limiter, lg *observability.Logger) *Client {
	return &Client{
		provider: p,
		limiter:  lim,
		logger:   lg,
	}
}

// Submit returns nil when the call produced no usable result (transport
// error, malformed reply) and a non-nil slice, possibly empty, for a well
// formed reply. It never aborts the surrounding run: one failing chunk is
// that chunk's problem.
func (c *Client) Submit(ctx context.Context, prompt string) []Finding {

	if err := c.limiter.Acquire(ctx); err != nil {
		c.logger.Error("limiter acquire failed", "err", err)
		return nil
	}
	defer c.limiter.Release()

	start := time.Now()

	resp, err := c.provider.Review(ctx, ReviewRequest{Prompt: prompt})

	duration := time.Since(start).Seconds()

	provider := resp.Provider
	if provider == "" {
		provider = "primary"
	}

	observability.OracleCalls.WithLabelValues(provider).Inc()
	observability.OracleLatency.WithLabelValues(provider).Observe(duration)

	if err != nil {
		observability.OracleErrors.WithLabelValues(provider).Inc()
		c.logger.Error("oracle call failed", "err", err)
		return nil
	}

	observability.OracleTokens.WithLabelValues(provider, resp.Model, "prompt").
		Add(float64(resp.Usage.PromptTokens))
	observability.OracleTokens.WithLabelValues(provider, resp.Model, "completion").
		Add(float64(resp.Usage.CompletionTokens))
	observability.OracleCostUSD.WithLabelValues(provider, resp.Model).
		Add(cost.EstimateUSD(resp.Model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens))

	findings, err := ParseReviews(resp.Content)
	if err != nil {
		observability.OracleErrors.WithLabelValues(provider).Inc()
		// Raw text kept in the log so malformed replies can be diagnosed.
		c.logger.Error("oracle reply unparseable",
			"err", err,
			"raw", resp.Content,
		)
		return nil
	}

	return findings
}
