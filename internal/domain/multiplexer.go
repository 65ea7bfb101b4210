package domain

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/davidbz/llmcompare/internal/observability"
)

// DefaultIdleTimeout bounds the wait for a target's next item.
const DefaultIdleTimeout = 120 * time.Second

// OpenFunc opens the adapter stream of one target.
type OpenFunc func(ctx context.Context) (<-chan StreamItem, error)

// Target is one stream admitted to a Multiplexer.
type Target struct {
	Spec    TargetSpec
	Pricing ModelPricing
	Open    OpenFunc

	// Err fails the target immediately without opening a stream.
	Err error
}

// MultiplexerOption configures a Multiplexer.
type MultiplexerOption func(*Multiplexer)

// WithIdleTimeout overrides DefaultIdleTimeout.
func WithIdleTimeout(d time.Duration) MultiplexerOption {
	return func(m *Multiplexer) {
		if d > 0 {
			m.idleTimeout = d
		}
	}
}

// WithMetrics records per-target metrics.
func WithMetrics(metrics *observability.Metrics) MultiplexerOption {
	return func(m *Multiplexer) {
		m.metrics = metrics
	}
}

// WithClock sets the clock used for created_at timestamps.
func WithClock(clock Clock) MultiplexerOption {
	return func(m *Multiplexer) {
		if clock != nil {
			m.now = clock
		}
	}
}

// Multiplexer merges the streams of several targets into one event sequence.
// Each target runs in its own goroutine and reports into a shared unbounded
// queue, so a slow target never delays a fast one. Every target produces exactly
// one terminal event, and the merged sequence ends with one EventDone.
//
// A Multiplexer is single use.
type Multiplexer struct {
	targets     []Target
	idleTimeout time.Duration
	metrics     *observability.Metrics
	now         Clock

	// beforeEmit, when set, sees every target event in the merge loop.
	beforeEmit func(StreamEvent)
}

// NewMultiplexer validates targets and builds a Multiplexer.
func NewMultiplexer(targets []Target, opts ...MultiplexerOption) (*Multiplexer, error) {
	seen := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		id := t.Spec.ID()
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTarget, id)
		}
		if t.Open == nil && t.Err == nil {
			return nil, fmt.Errorf("target %s has no stream", id)
		}
		seen[id] = struct{}{}
	}

	m := &Multiplexer{
		targets:     targets,
		idleTimeout: DefaultIdleTimeout,
		metrics:     nil,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// Run starts every target and returns the merged event stream. The channel is
// closed after EventDone, or early when ctx is cancelled. Cancelling ctx stops
// all workers and their adapter streams before the channel closes.
func (m *Multiplexer) Run(ctx context.Context) <-chan StreamEvent {
	out := make(chan StreamEvent)
	go m.merge(ctx, out)
	return out
}

func (m *Multiplexer) merge(parent context.Context, out chan<- StreamEvent) {
	ctx, cancel := context.WithCancel(parent)
	queue := newEventQueue()
	var wg sync.WaitGroup

	defer func() {
		cancel()
		wg.Wait()
		close(out)
	}()

	defer func() {
		if r := recover(); r != nil {
			err := NewInfrastructureError("merge target streams", fmt.Errorf("panic: %v", r))
			observability.FromContext(ctx).Error("stream merge aborted", observability.Error(err))
			if m.emit(ctx, out, StreamEvent{Kind: EventError, Err: err}) {
				m.emit(ctx, out, StreamEvent{Kind: EventDone})
			}
		}
	}()

	active := make(map[string]struct{}, len(m.targets))
	for _, t := range m.targets {
		active[t.Spec.ID()] = struct{}{}
		wg.Add(1)
		go m.pump(ctx, t, queue, &wg)
	}

	for len(active) > 0 {
		select {
		case <-ctx.Done():
			return
		case <-queue.ready():
		}

		for _, ev := range queue.drain() {
			if _, ok := active[ev.TargetID]; !ok {
				continue
			}
			if m.beforeEmit != nil {
				m.beforeEmit(ev)
			}
			if !m.emit(ctx, out, ev) {
				return
			}
			if ev.IsTerminal() {
				delete(active, ev.TargetID)
			}
		}
	}

	m.emit(ctx, out, StreamEvent{Kind: EventDone})
}

func (m *Multiplexer) emit(ctx context.Context, out chan<- StreamEvent, ev StreamEvent) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// pump forwards one target's adapter stream into the queue.
func (m *Multiplexer) pump(ctx context.Context, t Target, queue *eventQueue, wg *sync.WaitGroup) {
	defer wg.Done()

	spec := t.Spec
	provider := spec.Provider.String()
	ctx = observability.WithModel(observability.WithProvider(ctx, provider), spec.Model)
	logger := observability.FromContext(ctx)

	ctx, span := observability.StartSpan(ctx, "stream.target",
		attribute.String("provider", provider),
		attribute.String("model", spec.Model),
	)

	started := time.Now()
	m.metrics.TargetStarted(provider)

	base := StreamEvent{TargetID: spec.ID(), Provider: spec.Provider, Model: spec.Model}

	terminated := false
	fail := func(err error) {
		terminated = true
		if err == nil {
			err = errors.New("provider stream failed")
		}
		targetErr := NewTargetError(spec, err)
		ev := base
		ev.Kind = EventFailure
		ev.Err = targetErr
		queue.push(ev)

		m.metrics.TargetFinished(provider, observability.OutcomeFailure, time.Since(started))
		logger.Warn("stream target failed",
			observability.Error(err),
			observability.Duration("latency", time.Since(started)),
		)
		observability.EndSpan(span, targetErr)
	}

	// A panicking adapter or clock fails only its own target.
	defer func() {
		if r := recover(); r != nil && !terminated {
			fail(fmt.Errorf("panic: %v", r))
		}
	}()

	if t.Err != nil {
		fail(t.Err)
		return
	}

	targetCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger.Debug("dispatching stream target")
	items, err := t.Open(targetCtx)
	if err != nil {
		fail(err)
		return
	}

	idle := time.NewTimer(m.idleTimeout)
	defer idle.Stop()

	received := 0
	firstDelta := true
	for {
		select {
		case <-ctx.Done():
			m.metrics.TargetFinished(provider, observability.OutcomeCanceled, time.Since(started))
			logger.Debug("stream target cancelled")
			observability.EndSpan(span, ctx.Err())
			return

		case <-idle.C:
			fail(fmt.Errorf("%w after %s", ErrIdleTimeout, m.idleTimeout))
			return

		case item, ok := <-items:
			if !ok {
				if received == 0 {
					fail(ErrEmptyStream)
				} else {
					fail(ErrStreamTruncated)
				}
				return
			}
			received++
			idle.Reset(m.idleTimeout)

			switch item.Kind {
			case ItemDelta:
				if item.Text == "" {
					continue
				}
				if firstDelta {
					firstDelta = false
					m.metrics.FirstDelta(provider, time.Since(started))
				}
				ev := base
				ev.Kind = EventDelta
				ev.Content = item.Text
				queue.push(ev)

			case ItemUsage:
				elapsed := time.Since(started)
				usage := NewUsage(item.Usage.PromptTokens, item.Usage.CompletionTokens)
				ev := base
				ev.Kind = EventFinal
				ev.Summary = &UsageSummary{
					Usage:          usage,
					LatencySeconds: elapsed.Seconds(),
					Cost:           t.Pricing.Cost(usage),
					CreatedAt:      m.now().UTC(),
				}
				queue.push(ev)
				terminated = true

				m.metrics.TargetFinished(provider, observability.OutcomeFinal, elapsed)
				logger.Info("stream target completed",
					observability.Int("prompt_tokens", usage.PromptTokens),
					observability.Int("completion_tokens", usage.CompletionTokens),
					observability.Float64("cost", ev.Summary.Cost),
					observability.Duration("latency", elapsed),
				)
				observability.EndSpan(span, nil)
				return

			case ItemError:
				fail(item.Err)
				return

			default:
				fail(fmt.Errorf("unexpected stream item kind %d", item.Kind))
				return
			}
		}
	}
}
