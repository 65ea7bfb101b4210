package echo

import "github.com/davidbz/llmcompare/internal/domain"

const (
	echo4InputCostPerToken  = 0.0
	echo4OutputCostPerToken = 0.0
	echo4MaxTokens          = 4096
)

// DefaultPricing returns the echo catalog. Echo models have zero cost as they
// are for testing purposes only.
func DefaultPricing() map[string]domain.ModelPricing {
	return map[string]domain.ModelPricing{
		modelName: {
			InputCostPerToken:  echo4InputCostPerToken,
			OutputCostPerToken: echo4OutputCostPerToken,
			MaxTokens:          echo4MaxTokens,
		},
	}
}
