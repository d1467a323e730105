package app

import (
	"context"
	"net/http"
	"os"

	"pr-review-bot/internal/budget"
	"pr-review-bot/internal/dedup"
	"pr-review-bot/internal/github"
	"pr-review-bot/internal/limiter"
	"pr-review-bot/internal/observability"
	"pr-review-bot/internal/oracle"
	"pr-review-bot/internal/prompt"
	"pr-review-bot/internal/publish"
	"pr-review-bot/internal/ratelimit"
	"pr-review-bot/internal/review"
	"pr-review-bot/internal/validate"
	"pr-review-bot/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) routes() http.Handler {

	mux := http.NewServeMux()

	queue := worker.NewQueue(s.cfg)
	adapter := worker.NewAdapter(queue)

	ghClient := github.NewClient(s.cfg, s.logger)

	webhook := github.NewWebhookHandler(s.cfg, s.logger, adapter)

	// One admission gate shared by oracle calls and per-comment publishes.
	lim := limiter.New(s.cfg.MaxConcurrent)

	provider := oracle.NewProvider(s.cfg)
	providerWithCB := oracle.NewCircuitBreaker(provider)

	// Local ollama as last resort when the primary trips.
	fallback := oracle.NewFallback(
		providerWithCB,
		oracle.NewOllama(s.cfg.OllamaURL, s.cfg.OllamaModel),
	)

	oracleClient := oracle.NewClient(fallback, lim, s.logger)

	publisher := publish.New(
		ghClient,
		lim,
		dedup.NewMemory(),
		s.logger,
		s.cfg.PublishMode,
	)

	pipeline := review.NewPipeline(
		oracleClient,
		prompt.NewBuilder(resolveTemplate(s.cfg.PromptTemplate)),
		validate.New(s.logger),
		publisher,
		s.logger,
		s.cfg.ExcludePatterns,
		s.cfg.MaxComments,
	)

	guard := budget.NewGuard(
		s.cfg.BudgetEnabled,
		s.cfg.BudgetDailyUSD,
		s.cfg.BudgetPRUSD,
		budget.NewMemoryStore(),
	)

	processor := worker.NewProcessor(
		queue,
		ghClient,
		pipeline,
		ratelimit.New(s.cfg.RateLimitRPS, s.cfg.RateLimitBurst),
		guard,
		s.logger,
	)

	observability.InitMetrics()

	mux.HandleFunc("/health", s.health)
	mux.HandleFunc("/webhook/github", webhook.Handle)
	mux.Handle("/metrics", promhttp.Handler())

	processor.Start(context.Background())

	return mux
}

// resolveTemplate treats the config value as a file path when one exists,
// an inline template otherwise.
func resolveTemplate(v string) string {
	if v == "" {
		return ""
	}
	if b, err := os.ReadFile(v); err == nil {
		return string(b)
	}
	return v
}
