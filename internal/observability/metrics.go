package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerMetricsOnce sync.Once

	OracleCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pr_review_oracle_calls_total",
			Help: "Total oracle calls",
		},
		[]string{"provider"},
	)

	OracleErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pr_review_oracle_errors_total",
			Help: "Total oracle errors",
		},
		[]string{"provider"},
	)

	OracleLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pr_review_oracle_latency_seconds",
			Help:    "Oracle call latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	OracleTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pr_review_oracle_tokens_total",
			Help: "Total oracle tokens",
		},
		[]string{"provider", "model", "type"},
	)

	OracleCostUSD = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pr_review_oracle_cost_usd_total",
			Help: "Total estimated oracle cost in USD",
		},
		[]string{"provider", "model"},
	)

	FindingsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pr_review_findings_rejected_total",
			Help: "Findings dropped by line validation",
		},
	)

	CommentsPublished = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pr_review_comments_published_total",
			Help: "Review comments published",
		},
	)

	CommentsDiscarded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pr_review_comments_discarded_total",
			Help: "Validated comments discarded by the volume cap",
		},
	)

	BudgetBlocks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pr_review_budget_block_total",
			Help: "Total budget block events",
		},
		[]string{"scope"},
	)
)

func InitMetrics() {
	registerMetricsOnce.Do(func() {
		prometheus.MustRegister(
			OracleCalls, OracleErrors, OracleLatency,
			OracleTokens, OracleCostUSD,
			FindingsRejected, CommentsPublished, CommentsDiscarded,
			BudgetBlocks,
		)
	})
}
