// Package openai provides an adapter for OpenAI-compatible chat completion APIs
// using the official SDK. The same adapter serves xAI through its
// OpenAI-compatible endpoint.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/davidbz/llmcompare/internal/domain"
	"github.com/davidbz/llmcompare/internal/observability"
	"github.com/davidbz/llmcompare/internal/provider/sse"
)

// Default endpoints per provider kind.
const (
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultXAIBaseURL    = "https://api.x.ai/v1"
)

// Provider implements domain.ProviderAdapter for OpenAI-compatible backends.
type Provider struct {
	client openai.Client
	kind   domain.ProviderKind
}

// NewProvider creates a provider of the given kind. Only openai and xai are
// OpenAI-compatible.
func NewProvider(kind domain.ProviderKind, config Config) (*Provider, error) {
	var baseURL string
	switch kind {
	case domain.ProviderOpenAI:
		baseURL = DefaultOpenAIBaseURL
	case domain.ProviderXAI:
		baseURL = DefaultXAIBaseURL
	default:
		return nil, fmt.Errorf("provider kind %s is not OpenAI-compatible", kind)
	}

	if config.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", kind)
	}

	if config.BaseURL != "" {
		baseURL = config.BaseURL
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		option.WithBaseURL(baseURL),
	}

	if config.Timeout > 0 {
		client := sse.NewHTTPClient(time.Duration(config.Timeout) * time.Second)
		opts = append(opts, option.WithHTTPClient(client))
	}

	if config.MaxRetries >= 0 {
		opts = append(opts, option.WithMaxRetries(config.MaxRetries))
	}

	return &Provider{
		client: openai.NewClient(opts...),
		kind:   kind,
	}, nil
}

// Kind returns the provider kind.
func (p *Provider) Kind() domain.ProviderKind {
	return p.kind
}

// Stream sends a streaming chat completion request. Usage is requested through
// stream_options and arrives in the last chunk.
func (p *Provider) Stream(ctx context.Context, req *domain.StreamRequest) (<-chan domain.StreamItem, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling streaming chat completions API", observability.String("provider", string(p.kind)))

	stream := p.client.Chat.Completions.NewStreaming(ctx, toSDKParams(req))
	// The request is sent synchronously; a rejected call surfaces here.
	if err := stream.Err(); err != nil {
		_ = stream.Close()
		return nil, p.classify(err)
	}

	items := make(chan domain.StreamItem)

	go func() {
		defer close(items)
		defer stream.Close()
		defer logger.Debug("chat completions stream completed")

		send := func(item domain.StreamItem) bool {
			select {
			case items <- item:
				return true
			case <-ctx.Done():
				return false
			}
		}

		var usage domain.Usage
		finished := false

		for stream.Next() {
			chunk := stream.Current()

			if chunk.Usage.PromptTokens > 0 || chunk.Usage.CompletionTokens > 0 {
				usage = domain.NewUsage(int(chunk.Usage.PromptTokens), int(chunk.Usage.CompletionTokens))
				finished = true
			}

			for _, choice := range chunk.Choices {
				if choice.Delta.Content != "" {
					if !send(domain.DeltaItem(choice.Delta.Content)) {
						return
					}
				}
				if choice.FinishReason != "" {
					finished = true
				}
			}
		}

		if err := stream.Err(); err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("chat completions stream failed", observability.Error(err))
			send(domain.ErrorItem(p.classify(err)))
			return
		}

		if finished {
			send(domain.UsageItem(usage))
		}
	}()

	return items, nil
}

// classify wraps SDK errors with the matching domain sentinel.
func (p *Provider) classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden:
			return fmt.Errorf("%s: %w: %w", p.kind, domain.ErrAuthInvalid, err)
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%s: %w: %w", p.kind, domain.ErrRateLimit, err)
		case apiErr.StatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("%s: %w: %w", p.kind, domain.ErrProviderUnavailable, err)
		}
	}
	return fmt.Errorf("%s stream error: %w", p.kind, err)
}

// toSDKParams converts a domain request to SDK ChatCompletionNewParams.
func toSDKParams(req *domain.StreamRequest) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, len(req.Messages))
	for i, msg := range req.Messages {
		switch msg.Role {
		case domain.RoleAssistant:
			messages[i] = openai.AssistantMessage(msg.Content)
		case domain.RoleSystem:
			messages[i] = openai.SystemMessage(msg.Content)
		default:
			messages[i] = openai.UserMessage(msg.Content)
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(req.Model),
		Messages: messages,
		StreamOptions: openai.ChatCompletionStreamOptionsParam{
			IncludeUsage: openai.Bool(true),
		},
	}

	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	return params
}
