package domain_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/llmcompare/internal/domain"
	"github.com/davidbz/llmcompare/internal/mocks"
	"github.com/davidbz/llmcompare/internal/provider/registry"
	"github.com/davidbz/llmcompare/internal/routing"
)

// fakeAdapter replays a scripted stream and records its requests.
type fakeAdapter struct {
	kind    domain.ProviderKind
	stream  *scriptedStream
	calls   atomic.Int32
	lastReq atomic.Pointer[domain.StreamRequest]
}

func newFakeAdapter(kind domain.ProviderKind, steps ...step) *fakeAdapter {
	return &fakeAdapter{kind: kind, stream: script(steps...)}
}

func (f *fakeAdapter) Kind() domain.ProviderKind {
	return f.kind
}

func (f *fakeAdapter) Stream(ctx context.Context, req *domain.StreamRequest) (<-chan domain.StreamItem, error) {
	f.calls.Add(1)
	f.lastReq.Store(req)
	return f.stream.open(ctx)
}

func newComparisonService(
	t *testing.T,
	catalog domain.PricingCatalog,
	defaults []domain.TargetSpec,
	adapters ...domain.ProviderAdapter,
) *domain.ComparisonService {
	t.Helper()

	reg := registry.NewRegistry()
	for _, a := range adapters {
		require.NoError(t, reg.Register(context.Background(), a))
	}

	return domain.NewComparisonService(
		reg,
		catalog,
		routing.NewRouter(reg, defaults),
		nil,
		domain.StreamSettings{IdleTimeout: time.Second, DefaultMaxTokens: 4096},
	)
}

func TestComparisonService_Compare(t *testing.T) {
	gpt4o := domain.ModelPricing{InputCostPerToken: 0.0000025, OutputCostPerToken: 0.00001, MaxTokens: 16384}

	t.Run("should reject unknown provider before any adapter call", func(t *testing.T) {
		adapter := mocks.NewMockProviderAdapter(t)
		adapter.EXPECT().Kind().Return(domain.ProviderOpenAI)
		catalog := mocks.NewMockPricingCatalog(t)

		svc := newComparisonService(t, catalog, nil, adapter)

		events, err := svc.Compare(context.Background(), &domain.ComparisonRequest{
			Prompt:         "hello",
			ProviderModels: map[string]string{"bogus": "x"},
			MaxTokens:      100,
		})

		require.Nil(t, events)
		require.True(t, domain.IsRequestError(err))
		require.ErrorIs(t, err, domain.ErrUnknownProvider)
		adapter.AssertNotCalled(t, "Stream", mock.Anything, mock.Anything)
		catalog.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should fail only the target whose model is not recognized", func(t *testing.T) {
		openai := newFakeAdapter(domain.ProviderOpenAI, delta("Hi"), delta(" there"), usage(10, 2))
		anthropic := newFakeAdapter(domain.ProviderAnthropic, delta("never"), usage(1, 1))

		catalog := mocks.NewMockPricingCatalog(t)
		catalog.EXPECT().Lookup(mock.Anything, domain.ProviderOpenAI, "gpt-4o").Return(gpt4o, nil)
		catalog.EXPECT().Lookup(mock.Anything, domain.ProviderAnthropic, "claude-nope").
			Return(domain.ModelPricing{}, domain.ErrModelNotRecognized)

		svc := newComparisonService(t, catalog, nil, openai, anthropic)

		events, err := svc.Compare(context.Background(), &domain.ComparisonRequest{
			Prompt: "hello",
			ProviderModels: map[string]string{
				"openai":    "gpt-4o",
				"anthropic": "claude-nope",
			},
			MaxTokens: 256,
		})
		require.NoError(t, err)

		collected := collect(t, events)
		requireWellFormed(t, collected, 2)

		grouped := byTarget(collected)
		valid := grouped["openai:gpt-4o"]
		require.Equal(t, []string{"Hi", " there"}, contents(valid))
		require.Equal(t, domain.EventFinal, valid[len(valid)-1].Kind)
		require.InDelta(t, 10*0.0000025+2*0.00001, valid[len(valid)-1].Summary.Cost, 1e-12)

		invalid := grouped["anthropic:claude-nope"]
		require.Len(t, invalid, 1)
		require.Equal(t, domain.EventFailure, invalid[0].Kind)
		require.ErrorIs(t, invalid[0].Err, domain.ErrModelNotRecognized)

		require.EqualValues(t, 1, openai.calls.Load())
		require.EqualValues(t, 0, anthropic.calls.Load())
	})

	t.Run("should send the prompt as a single user message with the shared budget", func(t *testing.T) {
		openai := newFakeAdapter(domain.ProviderOpenAI, usage(1, 1))
		xai := newFakeAdapter(domain.ProviderXAI, usage(1, 1))

		catalog := mocks.NewMockPricingCatalog(t)
		catalog.EXPECT().Lookup(mock.Anything, domain.ProviderOpenAI, "gpt-4o").Return(gpt4o, nil)
		catalog.EXPECT().Lookup(mock.Anything, domain.ProviderXAI, "grok-2").
			Return(domain.ModelPricing{MaxTokens: 100}, nil)

		svc := newComparisonService(t, catalog, nil, openai, xai)

		events, err := svc.Compare(context.Background(), &domain.ComparisonRequest{
			Prompt:         "Explain channels",
			ProviderModels: map[string]string{"openai": "gpt-4o", "xai": "grok-2"},
			MaxTokens:      500,
		})
		require.NoError(t, err)
		requireWellFormed(t, collect(t, events), 2)

		req := openai.lastReq.Load()
		require.Equal(t, "gpt-4o", req.Model)
		require.Equal(t, 500, req.MaxTokens)
		require.Equal(t, []domain.Message{{Role: domain.RoleUser, Content: "Explain channels"}}, req.Messages)

		require.Equal(t, 100, xai.lastReq.Load().MaxTokens)
	})

	t.Run("should use the default set and budget when the request names none", func(t *testing.T) {
		echo := newFakeAdapter(domain.ProviderEcho, usage(1, 1))

		catalog := mocks.NewMockPricingCatalog(t)
		catalog.EXPECT().Lookup(mock.Anything, domain.ProviderEcho, "echo4").Return(domain.ModelPricing{}, nil)

		svc := newComparisonService(t, catalog, []domain.TargetSpec{
			{Provider: domain.ProviderEcho, Model: "echo4"},
			{Provider: domain.ProviderGoogle, Model: "gemini-2.0-flash"},
		}, echo)

		events, err := svc.Compare(context.Background(), &domain.ComparisonRequest{Prompt: "hi"})
		require.NoError(t, err)
		requireWellFormed(t, collect(t, events), 1)

		require.Equal(t, 4096, echo.lastReq.Load().MaxTokens)
	})

	t.Run("should reject invalid requests", func(t *testing.T) {
		svc := newComparisonService(t, mocks.NewMockPricingCatalog(t), nil)

		tests := []struct {
			name string
			req  *domain.ComparisonRequest
		}{
			{name: "nil request", req: nil},
			{name: "empty prompt", req: &domain.ComparisonRequest{Prompt: "   "}},
			{name: "negative budget", req: &domain.ComparisonRequest{Prompt: "hi", MaxTokens: -1}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Compare(context.Background(), tt.req)
				require.True(t, domain.IsRequestError(err))
			})
		}
	})

	t.Run("should abort with an infrastructure error when the catalog is unreachable", func(t *testing.T) {
		openai := newFakeAdapter(domain.ProviderOpenAI, usage(1, 1))

		catalog := mocks.NewMockPricingCatalog(t)
		catalog.EXPECT().Lookup(mock.Anything, domain.ProviderOpenAI, "gpt-4o").
			Return(domain.ModelPricing{}, errors.New("redis: connection refused"))

		svc := newComparisonService(t, catalog, nil, openai)

		_, err := svc.Compare(context.Background(), &domain.ComparisonRequest{
			Prompt:         "hi",
			ProviderModels: map[string]string{"openai": "gpt-4o"},
		})

		var infraErr *domain.InfrastructureError
		require.ErrorAs(t, err, &infraErr)
		require.EqualValues(t, 0, openai.calls.Load())
	})
}

func TestComparisonService_RouterFailures(t *testing.T) {
	newService := func(t *testing.T, router domain.Router, adapter *fakeAdapter) *domain.ComparisonService {
		t.Helper()

		reg := registry.NewRegistry()
		require.NoError(t, reg.Register(context.Background(), adapter))

		return domain.NewComparisonService(
			reg,
			mocks.NewMockPricingCatalog(t),
			router,
			nil,
			domain.StreamSettings{IdleTimeout: time.Second, DefaultMaxTokens: 4096},
		)
	}

	t.Run("should surface a routing backend failure as an infrastructure error", func(t *testing.T) {
		adapter := newFakeAdapter(domain.ProviderOpenAI, usage(1, 1))
		router := mocks.NewMockRouter(t)
		router.EXPECT().
			Route(mock.Anything, mock.MatchedBy(func(req *domain.RouteRequest) bool {
				return req.ProviderModels["openai"] == "gpt-4o"
			})).
			Return(nil, errors.New("defaults unavailable"))

		svc := newService(t, router, adapter)

		events, err := svc.Compare(context.Background(), &domain.ComparisonRequest{
			Prompt:         "hello",
			ProviderModels: map[string]string{"openai": "gpt-4o"},
		})

		require.Nil(t, events)
		var infraErr *domain.InfrastructureError
		require.ErrorAs(t, err, &infraErr)
		require.False(t, domain.IsRequestError(err))
		require.EqualValues(t, 0, adapter.calls.Load())
	})

	t.Run("should pass routing request errors through unchanged", func(t *testing.T) {
		adapter := newFakeAdapter(domain.ProviderOpenAI, usage(1, 1))
		router := mocks.NewMockRouter(t)
		router.EXPECT().
			Route(mock.Anything, mock.Anything).
			Return(nil, domain.RequestErrorf("%w: bogus", domain.ErrUnknownProvider))

		svc := newService(t, router, adapter)

		_, err := svc.Compare(context.Background(), &domain.ComparisonRequest{Prompt: "hello"})

		require.True(t, domain.IsRequestError(err))
		require.ErrorIs(t, err, domain.ErrUnknownProvider)
		require.EqualValues(t, 0, adapter.calls.Load())
	})
}
