// Package echo provides a testing provider that echoes back input messages.
// It implements domain.ProviderAdapter without making external API calls,
// providing deterministic streams for testing and development purposes.
package echo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/davidbz/llmcompare/internal/domain"
	"github.com/davidbz/llmcompare/internal/observability"
)

const (
	modelName         = "echo4"
	defaultChunkDelay = 10 * time.Millisecond
)

// Config contains echo provider settings.
type Config struct {
	Enabled    bool          `env:"ENABLED"     envDefault:"true"`
	ChunkDelay time.Duration `env:"CHUNK_DELAY" envDefault:"10ms"`
}

// Provider implements domain.ProviderAdapter for echo testing.
type Provider struct {
	supportedModels map[string]bool
	chunkDelay      time.Duration
}

// NewProvider creates a new echo provider.
// No credentials are required as this provider operates entirely in-memory.
func NewProvider(config Config) *Provider {
	delay := config.ChunkDelay
	if delay < 0 {
		delay = defaultChunkDelay
	}

	return &Provider{
		supportedModels: map[string]bool{
			modelName: true,
		},
		chunkDelay: delay,
	}
}

// Kind returns the provider kind.
func (p *Provider) Kind() domain.ProviderKind {
	return domain.ProviderEcho
}

// Stream echoes the request messages word by word, then reports usage.
func (p *Provider) Stream(ctx context.Context, req *domain.StreamRequest) (<-chan domain.StreamItem, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	if !p.supportedModels[req.Model] {
		return nil, fmt.Errorf("model %s is not supported by echo provider", req.Model)
	}

	logger := observability.FromContext(ctx)
	logger.Debug("streaming echo request")

	echoContent := buildEchoContent(req.Messages)
	words := strings.Fields(echoContent)

	// Respect the token budget the same way a real provider would.
	if req.MaxTokens > 0 && len(words) > req.MaxTokens {
		words = words[:req.MaxTokens]
	}

	items := make(chan domain.StreamItem)

	go func() {
		defer close(items)

		for i, word := range words {
			delta := word
			if i < len(words)-1 {
				delta += " "
			}

			select {
			case <-ctx.Done():
				return
			case items <- domain.DeltaItem(delta):
			}

			if p.chunkDelay > 0 {
				select {
				case <-ctx.Done():
					return
				case <-time.After(p.chunkDelay):
				}
			}
		}

		usage := domain.NewUsage(countTokens(echoContent), len(words))
		logger.Debug("echo completed",
			observability.Int("prompt_tokens", usage.PromptTokens),
			observability.Int("completion_tokens", usage.CompletionTokens),
		)

		select {
		case items <- domain.UsageItem(usage):
		case <-ctx.Done():
		}
	}()

	return items, nil
}

// buildEchoContent constructs the echo response from request messages.
func buildEchoContent(messages []domain.Message) string {
	if len(messages) == 0 {
		return ""
	}

	var builder strings.Builder
	for _, msg := range messages {
		builder.WriteString(fmt.Sprintf("[%s]: %s\n", msg.Role, msg.Content))
	}
	return builder.String()
}

// countTokens performs simple word-based token counting.
func countTokens(content string) int {
	if content == "" {
		return 0
	}
	return len(strings.Fields(content))
}
