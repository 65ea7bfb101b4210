package openai_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/llmcompare/internal/domain"
	"github.com/davidbz/llmcompare/internal/provider/breaker"
	"github.com/davidbz/llmcompare/internal/provider/openai"
)

func chunk(content, finish string) string {
	var finishReason any
	if finish != "" {
		finishReason = finish
	}
	raw, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion.chunk",
		"created": 1,
		"model":   "gpt-4o",
		"choices": []any{map[string]any{
			"index":         0,
			"delta":         map[string]any{"content": content},
			"finish_reason": finishReason,
		}},
	})
	return "data: " + string(raw) + "\n\n"
}

func usageChunk(prompt, completion int) string {
	raw, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion.chunk",
		"created": 1,
		"model":   "gpt-4o",
		"choices": []any{},
		"usage": map[string]any{
			"prompt_tokens":     prompt,
			"completion_tokens": completion,
			"total_tokens":      prompt + completion,
		},
	})
	return "data: " + string(raw) + "\n\n"
}

func newServer(t *testing.T, status int, body string, captured chan<- map[string]any) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		if captured != nil {
			var decoded map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&decoded))
			captured <- decoded
		}

		if status == http.StatusOK {
			w.Header().Set("Content-Type", "text/event-stream")
		} else {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func newProvider(t *testing.T, kind domain.ProviderKind, baseURL string) *openai.Provider {
	t.Helper()

	provider, err := openai.NewProvider(kind, openai.Config{
		APIKey:     "test-key",
		BaseURL:    baseURL,
		Timeout:    5,
		MaxRetries: 0,
	})
	require.NoError(t, err)
	return provider
}

func collect(items <-chan domain.StreamItem) []domain.StreamItem {
	var out []domain.StreamItem
	for item := range items {
		out = append(out, item)
	}
	return out
}

func request() *domain.StreamRequest {
	return &domain.StreamRequest{
		Model:     "gpt-4o",
		MaxTokens: 64,
		Messages: []domain.Message{
			{Role: domain.RoleSystem, Content: "be brief"},
			{Role: domain.RoleUser, Content: "hi"},
		},
	}
}

func TestNewProvider(t *testing.T) {
	t.Run("should create openai and xai providers", func(t *testing.T) {
		for _, kind := range []domain.ProviderKind{domain.ProviderOpenAI, domain.ProviderXAI} {
			provider, err := openai.NewProvider(kind, openai.Config{APIKey: "k"})
			require.NoError(t, err)
			require.Equal(t, kind, provider.Kind())
		}
	})

	t.Run("should reject missing API key", func(t *testing.T) {
		provider, err := openai.NewProvider(domain.ProviderOpenAI, openai.Config{})

		require.Error(t, err)
		require.Nil(t, provider)
		require.Contains(t, err.Error(), "API key is required")
	})

	t.Run("should reject non-compatible kind", func(t *testing.T) {
		provider, err := openai.NewProvider(domain.ProviderAnthropic, openai.Config{APIKey: "k"})

		require.Error(t, err)
		require.Nil(t, provider)
	})
}

func TestProvider_Stream(t *testing.T) {
	t.Run("should yield deltas then usage", func(t *testing.T) {
		body := chunk("Hello", "") + chunk(" there", "") + chunk("", "stop") + usageChunk(5, 2) + "data: [DONE]\n\n"
		captured := make(chan map[string]any, 1)
		server := newServer(t, http.StatusOK, body, captured)

		items, err := newProvider(t, domain.ProviderOpenAI, server.URL).Stream(context.Background(), request())
		require.NoError(t, err)

		require.Equal(t, []domain.StreamItem{
			domain.DeltaItem("Hello"),
			domain.DeltaItem(" there"),
			domain.UsageItem(domain.NewUsage(5, 2)),
		}, collect(items))

		sent := <-captured
		require.Equal(t, "gpt-4o", sent["model"])
		require.Equal(t, true, sent["stream"])
		require.Equal(t, map[string]any{"include_usage": true}, sent["stream_options"])
	})

	t.Run("should close without usage when stream is cut", func(t *testing.T) {
		server := newServer(t, http.StatusOK, chunk("partial", ""), nil)

		items, err := newProvider(t, domain.ProviderXAI, server.URL).Stream(context.Background(), request())
		require.NoError(t, err)

		require.Equal(t, []domain.StreamItem{domain.DeltaItem("partial")}, collect(items))
	})

	t.Run("should map rate limit to ErrRateLimit", func(t *testing.T) {
		server := newServer(t, http.StatusTooManyRequests, `{"error":{"message":"slow down","type":"rate_limit"}}`, nil)

		items, err := newProvider(t, domain.ProviderOpenAI, server.URL).Stream(context.Background(), request())
		require.ErrorIs(t, err, domain.ErrRateLimit)
		require.Nil(t, items)
	})

	t.Run("should map auth failure to ErrAuthInvalid", func(t *testing.T) {
		server := newServer(t, http.StatusUnauthorized, `{"error":{"message":"bad key"}}`, nil)

		items, err := newProvider(t, domain.ProviderOpenAI, server.URL).Stream(context.Background(), request())
		require.ErrorIs(t, err, domain.ErrAuthInvalid)
		require.Nil(t, items)
	})

	t.Run("should fail to open on server error", func(t *testing.T) {
		server := newServer(t, http.StatusInternalServerError, `{"error":{"message":"overloaded"}}`, nil)

		items, err := newProvider(t, domain.ProviderOpenAI, server.URL).Stream(context.Background(), request())
		require.ErrorIs(t, err, domain.ErrProviderUnavailable)
		require.Nil(t, items)
	})

	t.Run("should reject nil request", func(t *testing.T) {
		provider := newProvider(t, domain.ProviderOpenAI, "http://localhost")

		items, err := provider.Stream(context.Background(), nil)
		require.Error(t, err)
		require.Nil(t, items)
	})
}

func TestProvider_TripsBreaker(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":{"message":"overloaded"}}`)
	}))
	t.Cleanup(server.Close)

	adapter := breaker.Wrap(newProvider(t, domain.ProviderOpenAI, server.URL), breaker.Config{
		Enabled:     true,
		MaxFailures: 2,
		Timeout:     time.Minute,
		Interval:    time.Minute,
	})

	for range 5 {
		items, err := adapter.Stream(context.Background(), request())
		require.ErrorIs(t, err, domain.ErrProviderUnavailable)
		require.Nil(t, items)
	}

	require.Equal(t, gobreaker.StateOpen, adapter.State())
	require.Equal(t, int32(2), hits.Load())
}
