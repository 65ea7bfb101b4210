package catalog_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/llmcompare/internal/catalog"
	"github.com/davidbz/llmcompare/internal/domain"
)

func gpt4o() catalog.Entry {
	return catalog.Entry{
		Provider: domain.ProviderOpenAI,
		Model:    "gpt-4o",
		ModelPricing: domain.ModelPricing{
			InputCostPerToken:  0.0000025,
			OutputCostPerToken: 0.00001,
			MaxTokens:          16384,
		},
	}
}

type funcSource func(ctx context.Context) ([]catalog.Entry, error)

func (f funcSource) Fetch(ctx context.Context) ([]catalog.Entry, error) { return f(ctx) }

func TestCatalog_Lookup(t *testing.T) {
	snapshot, err := catalog.NewSnapshot([]catalog.Entry{gpt4o()})
	require.NoError(t, err)
	cat := catalog.New(snapshot)

	t.Run("should return pricing for known model", func(t *testing.T) {
		pricing, err := cat.Lookup(context.Background(), domain.ProviderOpenAI, "gpt-4o")
		require.NoError(t, err)
		require.Equal(t, 16384, pricing.MaxTokens)
	})

	t.Run("should return ErrModelNotRecognized for unknown model", func(t *testing.T) {
		_, err := cat.Lookup(context.Background(), domain.ProviderOpenAI, "gpt-9")
		require.ErrorIs(t, err, domain.ErrModelNotRecognized)
	})

	t.Run("should not match a model under another provider", func(t *testing.T) {
		_, err := cat.Lookup(context.Background(), domain.ProviderAnthropic, "gpt-4o")
		require.ErrorIs(t, err, domain.ErrModelNotRecognized)
	})
}

func TestNewSnapshot(t *testing.T) {
	t.Run("should reject unknown provider", func(t *testing.T) {
		entry := gpt4o()
		entry.Provider = "bogus"

		_, err := catalog.NewSnapshot([]catalog.Entry{entry})
		require.ErrorIs(t, err, domain.ErrUnknownProvider)
	})

	t.Run("should reject negative prices", func(t *testing.T) {
		entry := gpt4o()
		entry.InputCostPerToken = -1

		_, err := catalog.NewSnapshot([]catalog.Entry{entry})
		require.Error(t, err)
	})

	t.Run("should let later entries win", func(t *testing.T) {
		override := gpt4o()
		override.MaxTokens = 100

		snapshot, err := catalog.NewSnapshot([]catalog.Entry{gpt4o(), override})
		require.NoError(t, err)
		require.Equal(t, 100, snapshot[domain.ProviderOpenAI]["gpt-4o"].MaxTokens)
	})

	t.Run("should flatten entries in sorted order", func(t *testing.T) {
		claude := catalog.Entry{Provider: domain.ProviderAnthropic, Model: "claude-3-opus-20240229"}
		snapshot, err := catalog.NewSnapshot([]catalog.Entry{gpt4o(), claude})
		require.NoError(t, err)

		entries := snapshot.Entries()
		require.Len(t, entries, 2)
		require.Equal(t, domain.ProviderAnthropic, entries[0].Provider)
		require.Equal(t, "gpt-4o", entries[1].Model)
	})
}

func TestStaticSource(t *testing.T) {
	source := catalog.NewStaticSource(map[domain.ProviderKind]map[string]domain.ModelPricing{
		domain.ProviderEcho: {"echo4": {}},
	})

	entries, err := source.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, []catalog.Entry{{Provider: domain.ProviderEcho, Model: "echo4"}}, entries)
}

func TestFeedSource(t *testing.T) {
	t.Run("should decode feed entries", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode([]catalog.Entry{gpt4o()})
		}))
		defer server.Close()

		entries, err := catalog.NewFeedSource(server.URL, time.Second).Fetch(context.Background())
		require.NoError(t, err)
		require.Equal(t, []catalog.Entry{gpt4o()}, entries)
	})

	t.Run("should fail on non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := catalog.NewFeedSource(server.URL, time.Second).Fetch(context.Background())
		require.Error(t, err)
		require.Contains(t, err.Error(), "502")
	})
}

func TestLayered(t *testing.T) {
	base := catalog.NewStaticSource(map[domain.ProviderKind]map[string]domain.ModelPricing{
		domain.ProviderEcho: {"echo4": {}},
	})

	t.Run("should append overlay entries", func(t *testing.T) {
		overlay := funcSource(func(context.Context) ([]catalog.Entry, error) {
			return []catalog.Entry{gpt4o()}, nil
		})

		entries, err := catalog.NewLayered(base, nil, overlay).Fetch(context.Background())
		require.NoError(t, err)
		require.Len(t, entries, 2)
	})

	t.Run("should skip failing overlay and report it", func(t *testing.T) {
		var reported error
		overlay := funcSource(func(context.Context) ([]catalog.Entry, error) {
			return nil, errors.New("feed down")
		})

		entries, err := catalog.NewLayered(base, func(err error) { reported = err }, overlay).Fetch(context.Background())
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.EqualError(t, reported, "feed down")
	})
}

func TestRefresher(t *testing.T) {
	t.Run("should install fetched snapshot", func(t *testing.T) {
		cat := catalog.New(nil)
		source := funcSource(func(context.Context) ([]catalog.Entry, error) {
			return []catalog.Entry{gpt4o()}, nil
		})

		err := catalog.NewRefresher(cat, source, time.Hour, nil).Refresh(context.Background())
		require.NoError(t, err)

		_, err = cat.Lookup(context.Background(), domain.ProviderOpenAI, "gpt-4o")
		require.NoError(t, err)
	})

	t.Run("should keep previous snapshot when refresh fails", func(t *testing.T) {
		snapshot, err := catalog.NewSnapshot([]catalog.Entry{gpt4o()})
		require.NoError(t, err)
		cat := catalog.New(snapshot)
		source := funcSource(func(context.Context) ([]catalog.Entry, error) {
			return nil, errors.New("unreachable")
		})

		err = catalog.NewRefresher(cat, source, time.Hour, nil).Refresh(context.Background())
		require.Error(t, err)

		_, err = cat.Lookup(context.Background(), domain.ProviderOpenAI, "gpt-4o")
		require.NoError(t, err)
	})

	t.Run("should keep previous snapshot when source is empty", func(t *testing.T) {
		snapshot, err := catalog.NewSnapshot([]catalog.Entry{gpt4o()})
		require.NoError(t, err)
		cat := catalog.New(snapshot)
		source := funcSource(func(context.Context) ([]catalog.Entry, error) {
			return nil, nil
		})

		err = catalog.NewRefresher(cat, source, time.Hour, nil).Refresh(context.Background())
		require.Error(t, err)
		require.Len(t, cat.Models(context.Background()), 1)
	})

	t.Run("should refresh on interval until stopped", func(t *testing.T) {
		var fetches atomic.Int32
		source := funcSource(func(context.Context) ([]catalog.Entry, error) {
			fetches.Add(1)
			return []catalog.Entry{gpt4o()}, nil
		})

		refresher := catalog.NewRefresher(catalog.New(nil), source, 10*time.Millisecond, nil)
		refresher.Start(context.Background())

		require.Eventually(t, func() bool { return fetches.Load() >= 2 }, time.Second, 5*time.Millisecond)

		refresher.Stop()
		stopped := fetches.Load()
		time.Sleep(30 * time.Millisecond)
		require.Equal(t, stopped, fetches.Load())
	})
}
