package routing

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/davidbz/llmcompare/internal/domain"
)

// SimpleRouter validates requested targets against the registry and falls back
// to a configured default set.
type SimpleRouter struct {
	registry domain.ProviderRegistry
	defaults []domain.TargetSpec
}

// NewRouter creates a new router.
func NewRouter(registry domain.ProviderRegistry, defaults []domain.TargetSpec) *SimpleRouter {
	return &SimpleRouter{
		registry: registry,
		defaults: defaults,
	}
}

// Route returns the targets for a comparison, ordered by provider.
func (r *SimpleRouter) Route(ctx context.Context, req *domain.RouteRequest) ([]domain.TargetSpec, error) {
	if req == nil {
		return nil, domain.RequestErrorf("route request cannot be nil")
	}

	registered, err := r.registry.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}

	if len(req.ProviderModels) == 0 {
		return r.routeDefaults(registered)
	}

	specs := make([]domain.TargetSpec, 0, len(req.ProviderModels))
	seen := make(map[domain.ProviderKind]struct{}, len(req.ProviderModels))
	for name, model := range req.ProviderModels {
		kind, parseErr := domain.ParseProviderKind(name)
		if parseErr != nil {
			return nil, domain.NewRequestError(parseErr)
		}

		if !slices.Contains(registered, kind) {
			return nil, domain.RequestErrorf("%w: %s is not configured", domain.ErrUnknownProvider, kind)
		}

		if _, dup := seen[kind]; dup {
			return nil, domain.RequestErrorf("%w: provider %s requested more than once", domain.ErrDuplicateTarget, kind)
		}
		seen[kind] = struct{}{}

		model = strings.TrimSpace(model)
		if model == "" {
			return nil, domain.RequestErrorf("model name is required for provider %s", kind)
		}

		specs = append(specs, domain.TargetSpec{Provider: kind, Model: model})
	}

	sortSpecs(specs)
	return specs, nil
}

func (r *SimpleRouter) routeDefaults(registered []domain.ProviderKind) ([]domain.TargetSpec, error) {
	specs := make([]domain.TargetSpec, 0, len(r.defaults))
	for _, spec := range r.defaults {
		if slices.Contains(registered, spec.Provider) {
			specs = append(specs, spec)
		}
	}

	if len(specs) == 0 {
		return nil, domain.RequestErrorf("no providers available for the default comparison set")
	}

	sortSpecs(specs)
	return specs, nil
}

// ParseTargets parses "provider:model" entries into target specs.
func ParseTargets(entries []string) ([]domain.TargetSpec, error) {
	specs := make([]domain.TargetSpec, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, model, ok := strings.Cut(entry, ":")
		if !ok || strings.TrimSpace(model) == "" {
			return nil, fmt.Errorf("invalid target %q: expected provider:model", entry)
		}

		kind, err := domain.ParseProviderKind(name)
		if err != nil {
			return nil, fmt.Errorf("invalid target %q: %w", entry, err)
		}

		specs = append(specs, domain.TargetSpec{Provider: kind, Model: strings.TrimSpace(model)})
	}

	if len(specs) == 0 {
		return nil, errors.New("no targets configured")
	}

	return specs, nil
}

func sortSpecs(specs []domain.TargetSpec) {
	slices.SortFunc(specs, func(a, b domain.TargetSpec) int {
		return strings.Compare(a.ID(), b.ID())
	})
}
