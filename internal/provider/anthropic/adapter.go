// Package anthropic streams completions from the Anthropic Messages API.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"strings"
	"time"

	"github.com/davidbz/llmcompare/internal/domain"
	"github.com/davidbz/llmcompare/internal/observability"
	"github.com/davidbz/llmcompare/internal/provider/sse"
)

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type wireRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	System    string        `json:"system,omitempty"`
	Messages  []wireMessage `json:"messages"`
	Stream    bool          `json:"stream"`
}

type wireUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type wireEvent struct {
	Type    string `json:"type"`
	Message struct {
		Usage wireUsage `json:"usage"`
	} `json:"message"`
	Delta struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"delta"`
	Usage *wireUsage `json:"usage"`
	Error *wireError `json:"error"`
}

type wireError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Provider implements domain.ProviderAdapter for Anthropic.
type Provider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	version string
}

// NewProvider creates a new Anthropic provider.
func NewProvider(config Config) (*Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("Anthropic API key is required")
	}

	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.anthropic.com/v1"
	}
	version := config.Version
	if version == "" {
		version = "2023-06-01"
	}

	client := sse.NewHTTPClient(time.Duration(config.Timeout) * time.Second)

	return &Provider{
		client:  client,
		baseURL: baseURL,
		apiKey:  config.APIKey,
		version: version,
	}, nil
}

// Kind returns the provider kind.
func (p *Provider) Kind() domain.ProviderKind {
	return domain.ProviderAnthropic
}

// Stream opens a streaming Messages request.
func (p *Provider) Stream(ctx context.Context, req *domain.StreamRequest) (<-chan domain.StreamItem, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling Anthropic streaming API")

	body, err := json.Marshal(toWireRequest(req))
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("x-api-key", p.apiKey)
	httpReq.Header.Set("anthropic-version", p.version)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("Anthropic API call failed: %w", err)
	}
	if err = sse.CheckResponse(domain.ProviderAnthropic, resp); err != nil {
		logger.Error("Anthropic API call rejected", observability.Error(err))
		return nil, err
	}

	items := make(chan domain.StreamItem)
	go func() {
		defer close(items)
		defer resp.Body.Close()
		defer logger.Debug("Anthropic stream completed")

		for item := range readStream(resp.Body) {
			select {
			case items <- item:
			case <-ctx.Done():
				return
			}
			if item.Kind != domain.ItemDelta {
				return
			}
		}
	}()

	return items, nil
}

// readStream converts the event stream into items. A stream that ends
// without message_stop yields no terminal item.
func readStream(body io.Reader) iter.Seq[domain.StreamItem] {
	return func(emit func(domain.StreamItem) bool) {
		reader := sse.NewReader(body)
		var usage wireUsage

		for {
			ev, err := reader.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				emit(domain.ErrorItem(fmt.Errorf("failed to read Anthropic stream: %w", err)))
				return
			}
			if ev.Data == "" {
				continue
			}

			var event wireEvent
			if err = json.Unmarshal([]byte(ev.Data), &event); err != nil {
				emit(domain.ErrorItem(fmt.Errorf("malformed Anthropic event %q: %w", ev.Type, err)))
				return
			}

			switch event.Type {
			case "message_start":
				usage.InputTokens = event.Message.Usage.InputTokens
				usage.OutputTokens = event.Message.Usage.OutputTokens
			case "content_block_delta":
				if event.Delta.Text == "" {
					continue
				}
				if !emit(domain.DeltaItem(event.Delta.Text)) {
					return
				}
			case "message_delta":
				// output_tokens is cumulative
				if event.Usage != nil {
					if event.Usage.InputTokens > 0 {
						usage.InputTokens = event.Usage.InputTokens
					}
					usage.OutputTokens = event.Usage.OutputTokens
				}
			case "message_stop":
				emit(domain.UsageItem(domain.NewUsage(usage.InputTokens, usage.OutputTokens)))
				return
			case "error":
				emit(domain.ErrorItem(classify(event.Error)))
				return
			}
		}
	}
}

func classify(wireErr *wireError) error {
	if wireErr == nil {
		return errors.New("Anthropic stream error: unknown error")
	}

	msg := wireErr.Type + ": " + wireErr.Message
	switch wireErr.Type {
	case "overloaded_error", "api_error":
		return fmt.Errorf("Anthropic stream error: %w: %s", domain.ErrProviderUnavailable, msg)
	case "rate_limit_error":
		return fmt.Errorf("Anthropic stream error: %w: %s", domain.ErrRateLimit, msg)
	case "authentication_error", "permission_error":
		return fmt.Errorf("Anthropic stream error: %w: %s", domain.ErrAuthInvalid, msg)
	default:
		return fmt.Errorf("Anthropic stream error: %s", msg)
	}
}

// toWireRequest lifts system messages into the top-level system prompt.
func toWireRequest(req *domain.StreamRequest) wireRequest {
	var system []string
	messages := make([]wireMessage, 0, len(req.Messages))

	for _, msg := range req.Messages {
		switch msg.Role {
		case domain.RoleSystem:
			system = append(system, msg.Content)
		case domain.RoleAssistant:
			messages = append(messages, wireMessage{Role: domain.RoleAssistant, Content: msg.Content})
		default:
			messages = append(messages, wireMessage{Role: domain.RoleUser, Content: msg.Content})
		}
	}

	return wireRequest{
		Model:     req.Model,
		MaxTokens: req.MaxTokens,
		System:    strings.Join(system, "\n\n"),
		Messages:  messages,
		Stream:    true,
	}
}
