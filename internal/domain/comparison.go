package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/davidbz/llmcompare/internal/observability"
)

// DefaultMaxTokens is the budget used when a request does not set one.
const DefaultMaxTokens = 4096

// StreamSettings tunes the streaming services.
type StreamSettings struct {
	IdleTimeout      time.Duration
	DefaultMaxTokens int
}

func (s StreamSettings) budget(requested int) (int, error) {
	switch {
	case requested < 0:
		return 0, RequestErrorf("max_tokens must be positive, got %d", requested)
	case requested == 0 && s.DefaultMaxTokens > 0:
		return s.DefaultMaxTokens, nil
	case requested == 0:
		return DefaultMaxTokens, nil
	default:
		return requested, nil
	}
}

// ComparisonService streams one prompt against several targets at once.
type ComparisonService struct {
	registry ProviderRegistry
	catalog  PricingCatalog
	router   Router
	metrics  *observability.Metrics
	settings StreamSettings
}

// NewComparisonService creates a new comparison service (DI constructor).
func NewComparisonService(
	registry ProviderRegistry,
	catalog PricingCatalog,
	router Router,
	metrics *observability.Metrics,
	settings StreamSettings,
) *ComparisonService {
	return &ComparisonService{
		registry: registry,
		catalog:  catalog,
		router:   router,
		metrics:  metrics,
		settings: settings,
	}
}

// Compare validates req, dispatches one stream per target, and returns the merged
// event sequence. A RequestError is returned before any stream is opened. A
// model the catalog does not know fails only its own target.
func (s *ComparisonService) Compare(ctx context.Context, req *ComparisonRequest) (<-chan StreamEvent, error) {
	ctx, span := observability.StartSpan(ctx, "comparison.dispatch")

	events, err := s.compare(ctx, req)
	observability.EndSpan(span, err)

	switch {
	case err == nil:
		s.metrics.RequestServed("compare", "streaming")
	case IsRequestError(err):
		s.metrics.RequestServed("compare", "rejected")
	default:
		s.metrics.RequestServed("compare", "error")
	}

	return events, err
}

func (s *ComparisonService) compare(ctx context.Context, req *ComparisonRequest) (<-chan StreamEvent, error) {
	if req == nil {
		return nil, RequestErrorf("request cannot be nil")
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, RequestErrorf("prompt cannot be empty")
	}

	maxTokens, err := s.settings.budget(req.MaxTokens)
	if err != nil {
		return nil, err
	}

	specs, err := s.router.Route(ctx, &RouteRequest{ProviderModels: req.ProviderModels})
	if err != nil {
		if IsRequestError(err) {
			return nil, err
		}
		return nil, NewInfrastructureError("route comparison", err)
	}

	logger := observability.FromContext(ctx)
	logger.Info("comparison accepted",
		observability.Int("targets", len(specs)),
		observability.Int("max_tokens", maxTokens),
	)

	messages := []Message{{Role: RoleUser, Content: req.Prompt}}

	targets := make([]Target, 0, len(specs))
	for _, spec := range specs {
		target, resolveErr := s.resolve(ctx, spec, messages, maxTokens)
		if resolveErr != nil {
			return nil, resolveErr
		}
		targets = append(targets, target)
	}

	mux, err := NewMultiplexer(targets,
		WithIdleTimeout(s.settings.IdleTimeout),
		WithMetrics(s.metrics),
	)
	if err != nil {
		return nil, NewRequestError(err)
	}

	return mux.Run(ctx), nil
}

// resolve builds the multiplexer target for spec. Target-level problems are
// carried on the target; only infrastructure failures are returned.
func (s *ComparisonService) resolve(
	ctx context.Context,
	spec TargetSpec,
	messages []Message,
	maxTokens int,
) (Target, error) {
	target := Target{Spec: spec}

	adapter, err := s.registry.Get(ctx, spec.Provider)
	if err != nil {
		target.Err = fmt.Errorf("%w: %s", ErrUnknownProvider, spec.Provider)
		return target, nil
	}

	pricing, err := s.catalog.Lookup(ctx, spec.Provider, spec.Model)
	switch {
	case errors.Is(err, ErrModelNotRecognized):
		target.Err = fmt.Errorf("%w: %s", ErrModelNotRecognized, spec.Model)
		return target, nil
	case err != nil:
		return Target{}, NewInfrastructureError("resolve pricing", err)
	}

	target.Pricing = pricing
	target.Open = openStream(adapter, &StreamRequest{
		Model:     spec.Model,
		Messages:  messages,
		MaxTokens: pricing.Budget(maxTokens),
	})

	observability.FromContext(ctx).Debug("target resolved",
		observability.String("provider", spec.Provider.String()),
		observability.String("model", spec.Model),
		observability.Int("max_tokens", target.Pricing.Budget(maxTokens)),
	)

	return target, nil
}

func openStream(adapter ProviderAdapter, req *StreamRequest) OpenFunc {
	return func(ctx context.Context) (<-chan StreamItem, error) {
		ctx, span := observability.StartSpan(ctx, "provider.stream",
			attribute.String("provider", adapter.Kind().String()),
			attribute.String("model", req.Model),
		)
		items, err := adapter.Stream(ctx, req)
		observability.EndSpan(span, err)
		return items, err
	}
}
