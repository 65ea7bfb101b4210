package openai

import "github.com/davidbz/llmcompare/internal/domain"

const (
	// GPT-4 pricing per 1K tokens
	gpt4InputCostPer1K  = 0.03
	gpt4OutputCostPer1K = 0.06

	// GPT-4 Turbo pricing per 1K tokens
	gpt4TurboInputCostPer1K  = 0.01
	gpt4TurboOutputCostPer1K = 0.03

	// GPT-3.5 Turbo pricing per 1K tokens
	gpt35TurboInputCostPer1K  = 0.0005
	gpt35TurboOutputCostPer1K = 0.0015

	// GPT-4o pricing per 1K tokens
	gpt4oInputCostPer1K      = 0.0025
	gpt4oOutputCostPer1K     = 0.01
	gpt4oMiniInputCostPer1K  = 0.00015
	gpt4oMiniOutputCostPer1K = 0.0006

	// Grok pricing per 1K tokens
	grok3InputCostPer1K      = 0.003
	grok3OutputCostPer1K     = 0.015
	grok3MiniInputCostPer1K  = 0.0003
	grok3MiniOutputCostPer1K = 0.0005
	grok2InputCostPer1K      = 0.002
	grok2OutputCostPer1K     = 0.01

	tokensPerK = 1000.0
)

func perToken(inputPer1K, outputPer1K float64, maxTokens int) domain.ModelPricing {
	return domain.ModelPricing{
		InputCostPerToken:  inputPer1K / tokensPerK,
		OutputCostPerToken: outputPer1K / tokensPerK,
		MaxTokens:          maxTokens,
	}
}

// DefaultPricing returns the built-in OpenAI catalog.
func DefaultPricing() map[string]domain.ModelPricing {
	return map[string]domain.ModelPricing{
		"gpt-4o":        perToken(gpt4oInputCostPer1K, gpt4oOutputCostPer1K, 16384),
		"gpt-4o-mini":   perToken(gpt4oMiniInputCostPer1K, gpt4oMiniOutputCostPer1K, 16384),
		"gpt-4":         perToken(gpt4InputCostPer1K, gpt4OutputCostPer1K, 8192),
		"gpt-4-turbo":   perToken(gpt4TurboInputCostPer1K, gpt4TurboOutputCostPer1K, 4096),
		"gpt-3.5-turbo": perToken(gpt35TurboInputCostPer1K, gpt35TurboOutputCostPer1K, 4096),
	}
}

// XAIPricing returns the built-in xAI catalog.
func XAIPricing() map[string]domain.ModelPricing {
	return map[string]domain.ModelPricing{
		"grok-3-beta":      perToken(grok3InputCostPer1K, grok3OutputCostPer1K, 131072),
		"grok-3-mini-beta": perToken(grok3MiniInputCostPer1K, grok3MiniOutputCostPer1K, 131072),
		"grok-2-1212":      perToken(grok2InputCostPer1K, grok2OutputCostPer1K, 131072),
	}
}
