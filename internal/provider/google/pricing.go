package google

import "github.com/davidbz/llmcompare/internal/domain"

const tokensPerMillion = 1_000_000.0

// DefaultPricing returns the built-in Gemini catalog, priced per token.
func DefaultPricing() map[string]domain.ModelPricing {
	return map[string]domain.ModelPricing{
		"gemini-2.0-flash": {
			InputCostPerToken:  0.1 / tokensPerMillion,
			OutputCostPerToken: 0.4 / tokensPerMillion,
			MaxTokens:          8192,
		},
		"gemini-1.5-pro": {
			InputCostPerToken:  1.25 / tokensPerMillion,
			OutputCostPerToken: 5 / tokensPerMillion,
			MaxTokens:          8192,
		},
		"gemini-1.5-flash": {
			InputCostPerToken:  0.075 / tokensPerMillion,
			OutputCostPerToken: 0.3 / tokensPerMillion,
			MaxTokens:          8192,
		},
	}
}
