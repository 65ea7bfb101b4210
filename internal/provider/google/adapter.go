// Package google streams completions from the Gemini generateContent API.
package google

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/davidbz/llmcompare/internal/domain"
	"github.com/davidbz/llmcompare/internal/observability"
	"github.com/davidbz/llmcompare/internal/provider/sse"
)

const modelRole = "model"

type wirePart struct {
	Text string `json:"text,omitempty"`
}

type wireContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []wirePart `json:"parts"`
}

type wireGenConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens,omitempty"`
}

type wireRequest struct {
	SystemInstruction *wireContent  `json:"systemInstruction,omitempty"`
	Contents          []wireContent `json:"contents"`
	GenerationConfig  wireGenConfig `json:"generationConfig"`
}

type wireChunk struct {
	Candidates []struct {
		Content      wireContent `json:"content"`
		FinishReason string      `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata *struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
	} `json:"usageMetadata"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Provider implements domain.ProviderAdapter for Gemini.
type Provider struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewProvider creates a new Gemini provider.
func NewProvider(config Config) (*Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("Google API key is required")
	}

	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}

	client := sse.NewHTTPClient(time.Duration(config.Timeout) * time.Second)

	return &Provider{
		client:  client,
		baseURL: baseURL,
		apiKey:  config.APIKey,
	}, nil
}

// Kind returns the provider kind.
func (p *Provider) Kind() domain.ProviderKind {
	return domain.ProviderGoogle
}

// Stream opens a streamGenerateContent request.
func (p *Provider) Stream(ctx context.Context, req *domain.StreamRequest) (<-chan domain.StreamItem, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling Gemini streaming API")

	body, err := json.Marshal(toWireRequest(req))
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse", p.baseURL, url.PathEscape(req.Model))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("Gemini API call failed: %w", err)
	}
	if err = sse.CheckResponse(domain.ProviderGoogle, resp); err != nil {
		logger.Error("Gemini API call rejected", observability.Error(err))
		return nil, err
	}

	items := make(chan domain.StreamItem)
	go func() {
		defer close(items)
		defer resp.Body.Close()
		defer logger.Debug("Gemini stream completed")

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

// readStream converts Gemini chunks into items. Gemini has no explicit stop
// event, so the usage item is emitted once the body ends after a finishReason.
// usageMetadata is cumulative; the last value wins.
func readStream(body io.Reader) iter.Seq[domain.StreamItem] {
	return func(emit func(domain.StreamItem) bool) {
		reader := sse.NewReader(body)
		var promptTokens, completionTokens int
		finished := false

		for {
			ev, err := reader.Next()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				emit(domain.ErrorItem(fmt.Errorf("failed to read Gemini stream: %w", err)))
				return
			}
			if ev.Data == "" {
				continue
			}

			var chunk wireChunk
			if err = json.Unmarshal([]byte(ev.Data), &chunk); err != nil {
				emit(domain.ErrorItem(fmt.Errorf("malformed Gemini chunk: %w", err)))
				return
			}

			if chunk.Error != nil {
				emit(domain.ErrorItem(fmt.Errorf("Gemini stream error: %s: %s", chunk.Error.Status, chunk.Error.Message)))
				return
			}

			if chunk.UsageMetadata != nil {
				promptTokens = chunk.UsageMetadata.PromptTokenCount
				completionTokens = chunk.UsageMetadata.CandidatesTokenCount
			}

			for _, candidate := range chunk.Candidates {
				for _, part := range candidate.Content.Parts {
					if part.Text == "" {
						continue
					}
					if !emit(domain.DeltaItem(part.Text)) {
						return
					}
				}
				if candidate.FinishReason != "" {
					finished = true
				}
			}
		}

		if finished {
			emit(domain.UsageItem(domain.NewUsage(promptTokens, completionTokens)))
		}
	}
}

// toWireRequest maps roles onto Gemini's user/model turns and lifts system
// messages into systemInstruction.
func toWireRequest(req *domain.StreamRequest) wireRequest {
	wire := wireRequest{
		Contents:         make([]wireContent, 0, len(req.Messages)),
		GenerationConfig: wireGenConfig{MaxOutputTokens: req.MaxTokens},
	}

	var system []wirePart
	for _, msg := range req.Messages {
		switch msg.Role {
		case domain.RoleSystem:
			system = append(system, wirePart{Text: msg.Content})
		case domain.RoleAssistant:
			wire.Contents = append(wire.Contents, wireContent{Role: modelRole, Parts: []wirePart{{Text: msg.Content}}})
		default:
			wire.Contents = append(wire.Contents, wireContent{Role: domain.RoleUser, Parts: []wirePart{{Text: msg.Content}}})
		}
	}

	if len(system) > 0 {
		wire.SystemInstruction = &wireContent{Parts: system}
	}

	return wire
}
