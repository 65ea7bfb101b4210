package breaker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/llmcompare/internal/domain"
	"github.com/davidbz/llmcompare/internal/mocks"
	"github.com/davidbz/llmcompare/internal/provider/breaker"
)

func closedStream() <-chan domain.StreamItem {
	ch := make(chan domain.StreamItem, 1)
	ch <- domain.UsageItem(domain.NewUsage(1, 1))
	close(ch)
	return ch
}

func TestAdapter_PassesThrough(t *testing.T) {
	inner := mocks.NewMockProviderAdapter(t)
	inner.EXPECT().Kind().Return(domain.ProviderOpenAI)
	inner.EXPECT().Stream(mock.Anything, mock.Anything).Return(closedStream(), nil).Once()

	adapter := breaker.Wrap(inner, breaker.Config{})
	require.Equal(t, domain.ProviderOpenAI, adapter.Kind())

	items, err := adapter.Stream(context.Background(), &domain.StreamRequest{Model: "gpt-4o"})
	require.NoError(t, err)

	item := <-items
	require.Equal(t, domain.ItemUsage, item.Kind)
}

func TestAdapter_OpensAfterFailures(t *testing.T) {
	inner := mocks.NewMockProviderAdapter(t)
	inner.EXPECT().Kind().Return(domain.ProviderAnthropic)
	inner.EXPECT().Stream(mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Times(3)

	adapter := breaker.Wrap(inner, breaker.Config{MaxFailures: 3, Timeout: time.Minute, Interval: time.Minute})

	for range 3 {
		_, err := adapter.Stream(context.Background(), &domain.StreamRequest{})
		require.EqualError(t, err, "boom")
	}
	require.Equal(t, gobreaker.StateOpen, adapter.State())

	_, err := adapter.Stream(context.Background(), &domain.StreamRequest{})
	require.ErrorIs(t, err, domain.ErrProviderUnavailable)
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestAdapter_CancellationDoesNotTrip(t *testing.T) {
	inner := mocks.NewMockProviderAdapter(t)
	inner.EXPECT().Kind().Return(domain.ProviderXAI)
	inner.EXPECT().Stream(mock.Anything, mock.Anything).Return(nil, context.Canceled).Times(2)

	adapter := breaker.Wrap(inner, breaker.Config{MaxFailures: 1})

	for range 2 {
		_, err := adapter.Stream(context.Background(), &domain.StreamRequest{})
		require.ErrorIs(t, err, context.Canceled)
	}
	require.Equal(t, gobreaker.StateClosed, adapter.State())
}
