package cost

const tokensPer1K = 1000.0

type ModelPrice struct {
	InputPer1KUSD  float64
	OutputPer1KUSD float64
}

// Update as provider pricing changes. Models not listed (local ollama
// models included) are treated as free.
var prices = map[string]ModelPrice{
	"gpt-3.5-turbo": {InputPer1KUSD: 0.0005, OutputPer1KUSD: 0.0015},
	"gpt-4o-mini":   {InputPer1KUSD: 0.00015, OutputPer1KUSD: 0.0006},
	"gpt-4o":        {InputPer1KUSD: 0.005, OutputPer1KUSD: 0.015},
	"gpt-4.1-mini":  {InputPer1KUSD: 0.0004, OutputPer1KUSD: 0.0016},
}

// EstimateUSD prices one oracle exchange. Unknown models cost zero so the
// budget guard never blocks local providers.
func EstimateUSD(model string, promptTokens, completionTokens int) float64 {
	price, ok := prices[model]
	if !ok {
		return 0
	}

	in := (float64(promptTokens) / tokensPer1K) * price.InputPer1KUSD
	out := (float64(completionTokens) / tokensPer1K) * price.OutputPer1KUSD
	return in + out
}
