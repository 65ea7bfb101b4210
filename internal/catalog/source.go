package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/davidbz/llmcompare/internal/domain"
)

// Source produces catalog entries.
type Source interface {
	Fetch(ctx context.Context) ([]Entry, error)
}

// StaticSource serves a fixed set of entries.
type StaticSource struct {
	entries []Entry
}

// NewStaticSource flattens per-provider pricing tables into a source.
func NewStaticSource(tables map[domain.ProviderKind]map[string]domain.ModelPricing) *StaticSource {
	snapshot := Snapshot(tables)
	return &StaticSource{entries: snapshot.Entries()}
}

// Fetch returns a copy of the static entries.
func (s *StaticSource) Fetch(_ context.Context) ([]Entry, error) {
	return append([]Entry(nil), s.entries...), nil
}

const maxFeedBytes = 4 << 20

// FeedSource fetches entries from a remote JSON feed. The feed body is a JSON
// array of entries.
type FeedSource struct {
	url    string
	client *http.Client
}

// NewFeedSource creates a feed source.
func NewFeedSource(url string, timeout time.Duration) *FeedSource {
	return &FeedSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch downloads and decodes the feed.
func (s *FeedSource) Fetch(ctx context.Context) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog feed returned status %d", resp.StatusCode)
	}

	var entries []Entry
	if err = json.NewDecoder(io.LimitReader(resp.Body, maxFeedBytes)).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode catalog feed: %w", err)
	}

	return entries, nil
}

// Layered overlays the entries of later sources onto earlier ones. A failing
// overlay is skipped; a failing base fails the fetch.
type Layered struct {
	base     Source
	overlays []Source
	onError  func(error)
}

// NewLayered creates a layered source.
func NewLayered(base Source, onError func(error), overlays ...Source) *Layered {
	return &Layered{base: base, overlays: overlays, onError: onError}
}

// Fetch merges base and overlay entries.
func (l *Layered) Fetch(ctx context.Context) ([]Entry, error) {
	entries, err := l.base.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	for _, overlay := range l.overlays {
		extra, overlayErr := overlay.Fetch(ctx)
		if overlayErr != nil {
			if l.onError != nil {
				l.onError(overlayErr)
			}
			continue
		}
		entries = append(entries, extra...)
	}

	return entries, nil
}
