package domain_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/llmcompare/internal/domain"
)

func TestNewMultiplexer(t *testing.T) {
	t.Run("should reject duplicate target ids", func(t *testing.T) {
		stream := script(usage(1, 1))
		_, err := domain.NewMultiplexer([]domain.Target{
			target(domain.ProviderOpenAI, "gpt-4o", stream.open),
			target(domain.ProviderOpenAI, "gpt-4o", stream.open),
		})

		require.ErrorIs(t, err, domain.ErrDuplicateTarget)
	})

	t.Run("should reject target without stream or error", func(t *testing.T) {
		_, err := domain.NewMultiplexer([]domain.Target{
			{Spec: domain.TargetSpec{Provider: domain.ProviderOpenAI, Model: "gpt-4o"}},
		})

		require.Error(t, err)
		require.Contains(t, err.Error(), "has no stream")
	})
}

func TestMultiplexer_Run(t *testing.T) {
	t.Run("should emit only the sentinel when there are no targets", func(t *testing.T) {
		mux, err := domain.NewMultiplexer(nil)
		require.NoError(t, err)

		events := collect(t, mux.Run(context.Background()))

		require.Len(t, events, 1)
		require.Equal(t, domain.EventDone, events[0].Kind)
	})

	t.Run("should emit exactly one terminal event per target", func(t *testing.T) {
		for k := 1; k <= 6; k++ {
			t.Run(fmt.Sprintf("%d targets", k), func(t *testing.T) {
				targets := make([]domain.Target, 0, k)
				for i := range k {
					var stream *scriptedStream
					switch i % 3 {
					case 0:
						stream = script(delta("a"), delta("b"), usage(3, 2))
					case 1:
						stream = script(delta("x"), step{item: domain.ErrorItem(errors.New("upstream 500"))})
					default:
						stream = script(step{delay: time.Duration(i) * time.Millisecond, item: domain.UsageItem(domain.NewUsage(1, 1))})
					}
					targets = append(targets, target(domain.ProviderEcho, fmt.Sprintf("model-%d", i), stream.open))
				}

				mux, err := domain.NewMultiplexer(targets)
				require.NoError(t, err)

				requireWellFormed(t, collect(t, mux.Run(context.Background())), k)
			})
		}
	})

	t.Run("should forward deltas in order then one failure when the adapter errors", func(t *testing.T) {
		stream := script(
			delta("one "),
			delta("two "),
			delta("three"),
			step{item: domain.ErrorItem(errors.New("connection reset"))},
		)
		mux, err := domain.NewMultiplexer([]domain.Target{
			target(domain.ProviderAnthropic, "claude-3-7-sonnet-20250219", stream.open),
		})
		require.NoError(t, err)

		events := collect(t, mux.Run(context.Background()))
		requireWellFormed(t, events, 1)

		require.Len(t, events, 5)
		require.Equal(t, []string{"one ", "two ", "three"}, contents(events))
		require.Equal(t, domain.EventFailure, events[3].Kind)
		require.EqualError(t, events[3].Err, "connection reset")

		var targetErr *domain.TargetError
		require.ErrorAs(t, events[3].Err, &targetErr)
		require.Equal(t, domain.ProviderAnthropic, targetErr.Provider)
	})

	t.Run("should not delay a fast target behind a slow one", func(t *testing.T) {
		fast := script(
			delta("quick"),
			step{delay: 10 * time.Millisecond, item: domain.UsageItem(domain.NewUsage(1, 1))},
		)
		slow := script(
			step{delay: time.Second, item: domain.DeltaItem("late")},
			usage(1, 1),
		)

		mux, err := domain.NewMultiplexer([]domain.Target{
			target(domain.ProviderXAI, "grok-3-beta", slow.open),
			target(domain.ProviderOpenAI, "gpt-4o", fast.open),
		})
		require.NoError(t, err)

		start := time.Now()
		events := mux.Run(context.Background())

		var fastFinalAt, slowFinalAt time.Duration
		var order []domain.ProviderKind
		for ev := range events {
			if !ev.IsTerminal() {
				continue
			}
			order = append(order, ev.Provider)
			switch ev.Provider {
			case domain.ProviderOpenAI:
				fastFinalAt = time.Since(start)
			case domain.ProviderXAI:
				slowFinalAt = time.Since(start)
			}
		}

		require.Equal(t, []domain.ProviderKind{domain.ProviderOpenAI, domain.ProviderXAI}, order)
		require.Less(t, fastFinalAt, 500*time.Millisecond)
		require.GreaterOrEqual(t, slowFinalAt, time.Second)
	})

	t.Run("should fail a target whose stream closes without items", func(t *testing.T) {
		stream := script()
		mux, err := domain.NewMultiplexer([]domain.Target{
			target(domain.ProviderGoogle, "gemini-2.0-flash", stream.open),
		})
		require.NoError(t, err)

		events := collect(t, mux.Run(context.Background()))

		requireWellFormed(t, events, 1)
		require.Equal(t, domain.EventFailure, events[0].Kind)
		require.ErrorIs(t, events[0].Err, domain.ErrEmptyStream)
	})

	t.Run("should fail a target whose stream closes before usage", func(t *testing.T) {
		stream := script(delta("partial"))
		mux, err := domain.NewMultiplexer([]domain.Target{
			target(domain.ProviderGoogle, "gemini-2.0-flash", stream.open),
		})
		require.NoError(t, err)

		events := collect(t, mux.Run(context.Background()))

		requireWellFormed(t, events, 1)
		require.Equal(t, domain.EventDelta, events[0].Kind)
		require.ErrorIs(t, events[1].Err, domain.ErrStreamTruncated)
	})

	t.Run("should fail a silent target after the idle timeout and cancel its stream", func(t *testing.T) {
		hanging := newHangingStream()
		healthy := script(delta("hi"), usage(2, 1))

		mux, err := domain.NewMultiplexer([]domain.Target{
			target(domain.ProviderAnthropic, "claude-3-7-sonnet-20250219", hanging.open),
			target(domain.ProviderOpenAI, "gpt-4o", healthy.open),
		}, domain.WithIdleTimeout(50*time.Millisecond))
		require.NoError(t, err)

		events := collect(t, mux.Run(context.Background()))
		requireWellFormed(t, events, 2)

		grouped := byTarget(events)
		anthropic := grouped["anthropic:claude-3-7-sonnet-20250219"]
		require.Len(t, anthropic, 1)
		require.ErrorIs(t, anthropic[0].Err, domain.ErrIdleTimeout)

		openai := grouped["openai:gpt-4o"]
		require.Equal(t, domain.EventFinal, openai[len(openai)-1].Kind)

		select {
		case <-hanging.cancelled:
		case <-time.After(time.Second):
			t.Fatal("idle stream was not cancelled")
		}
	})

	t.Run("should report open errors and pre-failed targets as failures", func(t *testing.T) {
		mux, err := domain.NewMultiplexer([]domain.Target{
			{
				Spec: domain.TargetSpec{Provider: domain.ProviderOpenAI, Model: "gpt-unknown"},
				Err:  domain.ErrModelNotRecognized,
			},
			target(domain.ProviderXAI, "grok-3-beta", func(context.Context) (<-chan domain.StreamItem, error) {
				return nil, domain.ErrAuthInvalid
			}),
		})
		require.NoError(t, err)

		events := collect(t, mux.Run(context.Background()))
		requireWellFormed(t, events, 2)

		grouped := byTarget(events)
		require.ErrorIs(t, grouped["openai:gpt-unknown"][0].Err, domain.ErrModelNotRecognized)
		require.ErrorIs(t, grouped["xai:grok-3-beta"][0].Err, domain.ErrAuthInvalid)
	})

	t.Run("should attach usage summary with cost and latency to the final event", func(t *testing.T) {
		createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		stream := script(delta("hello"), usage(100, 50))

		mux, err := domain.NewMultiplexer([]domain.Target{{
			Spec: domain.TargetSpec{Provider: domain.ProviderOpenAI, Model: "gpt-4o"},
			Pricing: domain.ModelPricing{
				InputCostPerToken:  0.00001,
				OutputCostPerToken: 0.00003,
			},
			Open: stream.open,
		}}, domain.WithClock(func() time.Time { return createdAt }))
		require.NoError(t, err)

		events := collect(t, mux.Run(context.Background()))
		requireWellFormed(t, events, 1)

		final := events[1]
		require.Equal(t, domain.EventFinal, final.Kind)
		require.NotNil(t, final.Summary)
		require.Equal(t, 100, final.Summary.PromptTokens)
		require.Equal(t, 50, final.Summary.CompletionTokens)
		require.Equal(t, 150, final.Summary.TotalTokens)
		require.InDelta(t, 0.0025, final.Summary.Cost, 1e-12)
		require.GreaterOrEqual(t, final.Summary.LatencySeconds, 0.0)
		require.Equal(t, createdAt, final.Summary.CreatedAt)
	})

	t.Run("should skip empty deltas", func(t *testing.T) {
		stream := script(delta(""), delta("text"), delta(""), usage(1, 1))
		mux, err := domain.NewMultiplexer([]domain.Target{
			target(domain.ProviderEcho, "echo4", stream.open),
		})
		require.NoError(t, err)

		events := collect(t, mux.Run(context.Background()))

		require.Equal(t, []string{"text"}, contents(events))
	})

	t.Run("should cancel every adapter stream when the consumer goes away", func(t *testing.T) {
		streams := []*scriptedStream{
			script(delta("a"), step{delay: 10 * time.Second, item: domain.DeltaItem("never")}),
			script(delta("b"), step{delay: 10 * time.Second, item: domain.DeltaItem("never")}),
			script(step{delay: 10 * time.Second, item: domain.DeltaItem("never")}),
		}
		targets := make([]domain.Target, 0, len(streams))
		for i, s := range streams {
			targets = append(targets, target(domain.ProviderEcho, fmt.Sprintf("model-%d", i), s.open))
		}

		mux, err := domain.NewMultiplexer(targets)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		events := mux.Run(ctx)

		<-events
		cancel()

		closed := make(chan struct{})
		go func() {
			for range events {
			}
			close(closed)
		}()

		select {
		case <-closed:
		case <-time.After(time.Second):
			t.Fatal("event stream was not closed after cancellation")
		}

		require.Eventually(t, func() bool {
			for _, s := range streams {
				if s.exited.Load() != s.opened.Load() {
					return false
				}
			}
			return true
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("should end with an error frame and the sentinel when the merge loop panics", func(t *testing.T) {
		stream := script(delta("a"), usage(1, 1))
		mux, err := domain.NewMultiplexer(
			[]domain.Target{target(domain.ProviderEcho, "echo", stream.open)},
			domain.WithBeforeEmit(func(domain.StreamEvent) { panic("queue corrupted") }),
		)
		require.NoError(t, err)

		events := collect(t, mux.Run(context.Background()))

		require.Len(t, events, 2)
		require.Equal(t, domain.EventError, events[0].Kind)
		require.Equal(t, domain.EventDone, events[1].Kind)

		var infraErr *domain.InfrastructureError
		require.ErrorAs(t, events[0].Err, &infraErr)
		require.Contains(t, infraErr.Error(), "queue corrupted")

		require.Eventually(t, func() bool {
			return stream.exited.Load() == stream.opened.Load()
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("should fail only the target whose adapter panics", func(t *testing.T) {
		healthy := script(delta("ok"), usage(1, 1))
		mux, err := domain.NewMultiplexer([]domain.Target{
			target(domain.ProviderEcho, "healthy", healthy.open),
			target(domain.ProviderEcho, "broken", func(context.Context) (<-chan domain.StreamItem, error) {
				panic("nil client")
			}),
		})
		require.NoError(t, err)

		events := collect(t, mux.Run(context.Background()))
		requireWellFormed(t, events, 2)

		grouped := byTarget(events)
		require.Equal(t, domain.EventFinal, grouped["echo:healthy"][1].Kind)
		broken := grouped["echo:broken"]
		require.Len(t, broken, 1)
		require.Equal(t, domain.EventFailure, broken[0].Kind)
		require.Contains(t, broken[0].Err.Error(), "nil client")
	})
}
