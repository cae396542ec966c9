package llm

import "strings"

// modelPricing holds per-model pricing in USD per 1M tokens.
type modelPricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

var priceTable = map[string]modelPricing{
	"claude-sonnet-4-5": {InputPerMillion: 3.00, OutputPerMillion: 15.00},
	"claude-haiku-4-5":  {InputPerMillion: 0.80, OutputPerMillion: 4.00},

	"gpt-4o":        {InputPerMillion: 2.50, OutputPerMillion: 10.00},
	"gpt-4o-mini":   {InputPerMillion: 0.15, OutputPerMillion: 0.60},
	"gpt-4-turbo":   {InputPerMillion: 10.00, OutputPerMillion: 30.00},
	"gpt-3.5-turbo": {InputPerMillion: 0.50, OutputPerMillion: 1.50},

	"gemini-2.0-flash": {InputPerMillion: 0.10, OutputPerMillion: 0.40},
	"gemini-1.5-pro":   {InputPerMillion: 1.25, OutputPerMillion: 5.00},
}

// lookupPricing resolves the ids providers actually report: OpenRouter
// prefixes the vendor ("openai/gpt-4o"), dots stand in for dashes in some
// version numbers ("claude-sonnet-4.5"), and responses often carry a dated
// snapshot ("gpt-4o-2024-08-06"). The longest table key that prefixes the
// normalized id wins, so "gpt-4o-mini-..." is never priced as "gpt-4o".
func lookupPricing(model string) (modelPricing, bool) {
	id := strings.ToLower(model)
	if i := strings.LastIndex(id, "/"); i >= 0 {
		id = id[i+1:]
	}
	id = strings.ReplaceAll(id, ".", "-")

	var (
		best    modelPricing
		bestLen int
	)
	for key, p := range priceTable {
		k := strings.ReplaceAll(key, ".", "-")
		if (id == k || strings.HasPrefix(id, k+"-")) && len(k) > bestLen {
			best, bestLen = p, len(k)
		}
	}
	return best, bestLen > 0
}

// EstimateCost returns the estimated cost in USD for the given model and token counts.
// Returns 0 for unknown and locally served models.
func EstimateCost(model string, inputTokens, outputTokens int) float64 {
	pricing, ok := lookupPricing(model)
	if !ok {
		return 0
	}
	inputCost := float64(inputTokens) / 1_000_000.0 * pricing.InputPerMillion
	outputCost := float64(outputTokens) / 1_000_000.0 * pricing.OutputPerMillion
	return inputCost + outputCost
}

// EstimateTokens provides a rough token count estimation for the given text.
// Uses the approximation of 1 token per 4 characters.
func EstimateTokens(text string) int {
	n := len(text) / 4
	if n == 0 && len(text) > 0 {
		return 1
	}
	return n
}

// EstimateUsage fills in token counts a provider left at zero, from the
// request messages and the returned text.
func EstimateUsage(req CompletionRequest, resp *CompletionResponse) {
	if resp.InputTokens == 0 {
		for _, m := range req.Messages {
			resp.InputTokens += EstimateTokens(m.Content)
		}
	}
	if resp.OutputTokens == 0 {
		resp.OutputTokens = EstimateTokens(resp.Content)
	}
}
