// Package breaker wraps provider adapters with a circuit breaker around
// stream initiation.
package breaker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/davidbz/llmcompare/internal/domain"
	"github.com/davidbz/llmcompare/internal/observability"
)

const (
	defaultMaxFailures uint32 = 5
	defaultTimeout            = 30 * time.Second
	defaultInterval           = 60 * time.Second
)

// Config configures breaker behavior.
type Config struct {
	Enabled     bool          `env:"ENABLED"      envDefault:"true"`
	MaxFailures uint32        `env:"MAX_FAILURES" envDefault:"5"`
	Timeout     time.Duration `env:"TIMEOUT"      envDefault:"30s"`
	Interval    time.Duration `env:"INTERVAL"     envDefault:"60s"`
}

// Adapter is a domain.ProviderAdapter guarded by a circuit breaker. Errors
// raised after a stream is open flow through the channel and do not count.
type Adapter struct {
	inner   domain.ProviderAdapter
	breaker *gobreaker.CircuitBreaker[<-chan domain.StreamItem]
}

// Wrap guards inner with a breaker. Zero config values fall back to defaults.
func Wrap(inner domain.ProviderAdapter, cfg Config) *Adapter {
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = defaultMaxFailures
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	interval := cfg.Interval
	if interval == 0 {
		interval = defaultInterval
	}

	cb := gobreaker.NewCircuitBreaker[<-chan domain.StreamItem](gobreaker.Settings{
		Name:        "provider:" + string(inner.Kind()),
		MaxRequests: 1,
		Interval:    interval,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			observability.FromContext(context.Background()).Warn("circuit breaker state change",
				observability.String("breaker", name),
				observability.String("from", from.String()),
				observability.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			// caller cancellation says nothing about provider health
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &Adapter{inner: inner, breaker: cb}
}

// Kind returns the wrapped provider kind.
func (a *Adapter) Kind() domain.ProviderKind {
	return a.inner.Kind()
}

// Stream opens the inner stream through the breaker.
func (a *Adapter) Stream(ctx context.Context, req *domain.StreamRequest) (<-chan domain.StreamItem, error) {
	items, err := a.breaker.Execute(func() (<-chan domain.StreamItem, error) {
		return a.inner.Stream(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("provider %s circuit open: %w: %w", a.inner.Kind(), domain.ErrProviderUnavailable, err)
		}
		return nil, err
	}
	return items, nil
}

// State returns the current breaker state.
func (a *Adapter) State() gobreaker.State {
	return a.breaker.State()
}
