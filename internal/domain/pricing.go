package domain

// ModelPricing is the catalog entry for one provider model.
type ModelPricing struct {
	InputCostPerToken  float64 `json:"input_cost_per_token"`  // USD per prompt token
	OutputCostPerToken float64 `json:"output_cost_per_token"` // USD per completion token
	MaxTokens          int     `json:"max_tokens"`            // 0 when the catalog declares no limit
}

// Cost computes the linear token cost of usage. No rounding is applied.
func (p ModelPricing) Cost(usage Usage) float64 {
	inputCost := float64(usage.PromptTokens) * p.InputCostPerToken
	outputCost := float64(usage.CompletionTokens) * p.OutputCostPerToken
	return inputCost + outputCost
}

// Budget clamps the requested token budget to the model's limit.
func (p ModelPricing) Budget(requested int) int {
	if p.MaxTokens > 0 && requested > p.MaxTokens {
		return p.MaxTokens
	}
	return requested
}
