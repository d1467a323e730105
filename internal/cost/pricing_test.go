package cost_test

import (
	"testing"

	"pr-review-bot/internal/cost"

	"github.com/stretchr/testify/require"
)

func TestEstimateUSD(t *testing.T) {

	// 1000 prompt + 1000 completion tokens of gpt-4o-mini
	got := cost.EstimateUSD("gpt-4o-mini", 1000, 1000)
	require.InDelta(t, 0.00015+0.0006, got, 1e-9)
}

func TestEstimateUSD_UnknownModelIsFree(t *testing.T) {
	require.Zero(t, cost.EstimateUSD("llama3", 5000, 5000))
}
