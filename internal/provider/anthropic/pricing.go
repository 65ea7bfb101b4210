package anthropic

import "github.com/davidbz/llmcompare/internal/domain"

const tokensPerMillion = 1_000_000.0

// DefaultPricing returns the built-in Anthropic catalog, priced per token.
func DefaultPricing() map[string]domain.ModelPricing {
	return map[string]domain.ModelPricing{
		"claude-3-7-sonnet-20250219": {
			InputCostPerToken:  3 / tokensPerMillion,
			OutputCostPerToken: 15 / tokensPerMillion,
			MaxTokens:          8192,
		},
		"claude-3-5-sonnet-20241022": {
			InputCostPerToken:  3 / tokensPerMillion,
			OutputCostPerToken: 15 / tokensPerMillion,
			MaxTokens:          8192,
		},
		"claude-3-5-haiku-20241022": {
			InputCostPerToken:  0.8 / tokensPerMillion,
			OutputCostPerToken: 4 / tokensPerMillion,
			MaxTokens:          8192,
		},
		"claude-3-opus-20240229": {
			InputCostPerToken:  15 / tokensPerMillion,
			OutputCostPerToken: 75 / tokensPerMillion,
			MaxTokens:          4096,
		},
	}
}
