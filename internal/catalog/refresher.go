package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/davidbz/llmcompare/internal/observability"
)

// DefaultRefreshInterval is the catalog TTL.
const DefaultRefreshInterval = 24 * time.Hour

// Refresher periodically rebuilds the catalog from a source. A failed refresh
// keeps the previous snapshot.
type Refresher struct {
	catalog  *Catalog
	source   Source
	interval time.Duration
	metrics  *observability.Metrics

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRefresher creates a refresher. A non-positive interval uses DefaultRefreshInterval.
func NewRefresher(catalog *Catalog, source Source, interval time.Duration, metrics *observability.Metrics) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Refresher{
		catalog:  catalog,
		source:   source,
		interval: interval,
		metrics:  metrics,
	}
}

// Refresh fetches the source once and installs the result.
func (r *Refresher) Refresh(ctx context.Context) error {
	logger := observability.FromContext(ctx)

	entries, err := r.source.Fetch(ctx)
	if err == nil && len(entries) == 0 {
		err = errors.New("catalog source returned no entries")
	}
	if err != nil {
		r.metrics.CatalogRefreshed(observability.StatusError, 0)
		logger.Warn("catalog refresh failed, keeping previous snapshot", observability.Error(err))
		return fmt.Errorf("failed to refresh catalog: %w", err)
	}

	snapshot, err := NewSnapshot(entries)
	if err != nil {
		r.metrics.CatalogRefreshed(observability.StatusError, 0)
		logger.Warn("catalog refresh rejected, keeping previous snapshot", observability.Error(err))
		return fmt.Errorf("failed to refresh catalog: %w", err)
	}

	r.catalog.Replace(snapshot)
	r.metrics.CatalogRefreshed(observability.StatusOK, len(entries))
	logger.Info("catalog refreshed", observability.Int("models", len(entries)))

	return nil
}

// Start runs Refresh every interval until Stop or ctx is done.
func (r *Refresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = r.Refresh(ctx)
			}
		}
	}(r.done)
}

// Stop halts the refresh loop and waits for it to exit.
func (r *Refresher) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
