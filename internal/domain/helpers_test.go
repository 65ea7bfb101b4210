package domain_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/llmcompare/internal/domain"
)

const collectTimeout = 5 * time.Second

// step is one scripted adapter item, sent after delay.
type step struct {
	delay time.Duration
	item  domain.StreamItem
}

// scriptedStream replays steps and closes. exited is incremented once its
// goroutine returns, whether it finished or was cancelled.
type scriptedStream struct {
	steps  []step
	opened atomic.Int32
	exited atomic.Int32
}

func script(steps ...step) *scriptedStream {
	return &scriptedStream{steps: steps}
}

func (s *scriptedStream) open(ctx context.Context) (<-chan domain.StreamItem, error) {
	s.opened.Add(1)
	ch := make(chan domain.StreamItem)
	go func() {
		defer s.exited.Add(1)
		defer close(ch)
		for _, st := range s.steps {
			if st.delay > 0 {
				select {
				case <-time.After(st.delay):
				case <-ctx.Done():
					return
				}
			}
			select {
			case ch <- st.item:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

// hangingStream never yields and only exits when its context is cancelled.
type hangingStream struct {
	cancelled chan struct{}
}

func newHangingStream() *hangingStream {
	return &hangingStream{cancelled: make(chan struct{})}
}

func (h *hangingStream) open(ctx context.Context) (<-chan domain.StreamItem, error) {
	ch := make(chan domain.StreamItem)
	go func() {
		<-ctx.Done()
		close(h.cancelled)
		close(ch)
	}()
	return ch, nil
}

func delta(text string) step {
	return step{item: domain.DeltaItem(text)}
}

func usage(prompt, completion int) step {
	return step{item: domain.UsageItem(domain.NewUsage(prompt, completion))}
}

func target(provider domain.ProviderKind, model string, open domain.OpenFunc) domain.Target {
	return domain.Target{
		Spec: domain.TargetSpec{Provider: provider, Model: model},
		Open: open,
	}
}

// collect reads events until the channel closes.
func collect(t *testing.T, events <-chan domain.StreamEvent) []domain.StreamEvent {
	t.Helper()

	var out []domain.StreamEvent
	timeout := time.After(collectTimeout)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-timeout:
			t.Fatalf("event stream did not close within %s", collectTimeout)
			return out
		}
	}
}

// byTarget groups non-sentinel events by target id, keeping arrival order.
func byTarget(events []domain.StreamEvent) map[string][]domain.StreamEvent {
	grouped := make(map[string][]domain.StreamEvent)
	for _, ev := range events {
		if ev.Kind == domain.EventDone || ev.Kind == domain.EventError {
			continue
		}
		grouped[ev.TargetID] = append(grouped[ev.TargetID], ev)
	}
	return grouped
}

// requireWellFormed asserts one terminal event per target, nothing after it,
// and exactly one trailing completion sentinel.
func requireWellFormed(t *testing.T, events []domain.StreamEvent, targets int) {
	t.Helper()

	require.NotEmpty(t, events)
	require.Equal(t, domain.EventDone, events[len(events)-1].Kind)

	done := 0
	for _, ev := range events {
		if ev.Kind == domain.EventDone {
			done++
		}
	}
	require.Equal(t, 1, done)

	grouped := byTarget(events)
	require.Len(t, grouped, targets)
	for id, evs := range grouped {
		terminals := 0
		for i, ev := range evs {
			if ev.IsTerminal() {
				terminals++
				require.Equal(t, len(evs)-1, i, "target %s has events after its terminal event", id)
			}
		}
		require.Equal(t, 1, terminals, "target %s", id)
	}
}

func contents(events []domain.StreamEvent) []string {
	var out []string
	for _, ev := range events {
		if ev.Kind == domain.EventDelta {
			out = append(out, ev.Content)
		}
	}
	return out
}
