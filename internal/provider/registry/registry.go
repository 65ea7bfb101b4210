package registry

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/davidbz/llmcompare/internal/domain"
)

// Registry implements the ProviderRegistry interface.
type Registry struct {
	mu       sync.RWMutex
	adapters map[domain.ProviderKind]domain.ProviderAdapter
}

// NewRegistry creates a new provider registry.
func NewRegistry() *Registry {
	return &Registry{
		mu:       sync.RWMutex{},
		adapters: make(map[domain.ProviderKind]domain.ProviderAdapter),
	}
}

// Register adds an adapter to the registry.
func (r *Registry) Register(_ context.Context, adapter domain.ProviderAdapter) error {
	if adapter == nil {
		return errors.New("adapter cannot be nil")
	}

	kind := adapter.Kind()
	if !kind.Valid() {
		return fmt.Errorf("invalid provider kind %q", kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.adapters[kind]; exists {
		return fmt.Errorf("provider %s already registered", kind)
	}

	r.adapters[kind] = adapter
	return nil
}

// Get retrieves an adapter by provider kind.
func (r *Registry) Get(_ context.Context, kind domain.ProviderKind) (domain.ProviderAdapter, error) {
	if kind == "" {
		return nil, errors.New("provider kind cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	adapter, exists := r.adapters[kind]
	if !exists {
		return nil, fmt.Errorf("provider %s not found: %w", kind, domain.ErrUnknownProvider)
	}

	return adapter, nil
}

// List returns all registered provider kinds in a stable order.
func (r *Registry) List(_ context.Context) ([]domain.ProviderKind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]domain.ProviderKind, 0, len(r.adapters))
	for kind := range r.adapters {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)

	return kinds, nil
}
