// Package catalog holds the provider model catalog: per-token pricing and
// output limits for every known (provider, model) pair. The current snapshot is
// read-only for request handling and is swapped whole by a background refresher.
package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/davidbz/llmcompare/internal/domain"
)

// Entry is one catalog row.
type Entry struct {
	Provider domain.ProviderKind `json:"provider"`
	Model    string              `json:"model"`
	domain.ModelPricing
}

// Snapshot maps provider to model to pricing.
type Snapshot map[domain.ProviderKind]map[string]domain.ModelPricing

// NewSnapshot builds a snapshot from entries. Later entries win.
func NewSnapshot(entries []Entry) (Snapshot, error) {
	snapshot := make(Snapshot)
	for _, e := range entries {
		if !e.Provider.Valid() {
			return nil, fmt.Errorf("catalog entry %q: %w: %q", e.Model, domain.ErrUnknownProvider, e.Provider)
		}
		if strings.TrimSpace(e.Model) == "" {
			return nil, fmt.Errorf("catalog entry for %s has no model", e.Provider)
		}
		if e.InputCostPerToken < 0 || e.OutputCostPerToken < 0 || e.MaxTokens < 0 {
			return nil, fmt.Errorf("catalog entry %s/%s has negative values", e.Provider, e.Model)
		}

		models, ok := snapshot[e.Provider]
		if !ok {
			models = make(map[string]domain.ModelPricing)
			snapshot[e.Provider] = models
		}
		models[e.Model] = e.ModelPricing
	}
	return snapshot, nil
}

// Entries flattens the snapshot, sorted by provider then model.
func (s Snapshot) Entries() []Entry {
	entries := make([]Entry, 0)
	for provider, models := range s {
		for model, pricing := range models {
			entries = append(entries, Entry{Provider: provider, Model: model, ModelPricing: pricing})
		}
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := strings.Compare(string(a.Provider), string(b.Provider)); c != 0 {
			return c
		}
		return strings.Compare(a.Model, b.Model)
	})
	return entries
}

// Catalog is the in-memory PricingCatalog.
type Catalog struct {
	mu          sync.RWMutex
	snapshot    Snapshot
	refreshedAt time.Time
}

// New creates a catalog seeded with snapshot.
func New(snapshot Snapshot) *Catalog {
	if snapshot == nil {
		snapshot = make(Snapshot)
	}
	return &Catalog{
		mu:          sync.RWMutex{},
		snapshot:    snapshot,
		refreshedAt: time.Now(),
	}
}

// Lookup returns the pricing for a provider model.
func (c *Catalog) Lookup(_ context.Context, kind domain.ProviderKind, model string) (domain.ModelPricing, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	pricing, ok := c.snapshot[kind][model]
	if !ok {
		return domain.ModelPricing{}, fmt.Errorf("%w: %s/%s", domain.ErrModelNotRecognized, kind, model)
	}
	return pricing, nil
}

// Replace swaps in a new snapshot.
func (c *Catalog) Replace(snapshot Snapshot) {
	c.mu.Lock()
	c.snapshot = snapshot
	c.refreshedAt = time.Now()
	c.mu.Unlock()
}

// Models lists every catalog entry.
func (c *Catalog) Models(_ context.Context) []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot.Entries()
}

// RefreshedAt returns when the current snapshot was installed.
func (c *Catalog) RefreshedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshedAt
}
