package events

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func tradeEvent() TradeExecutedEvent {
	return NewTradeExecutedEvent(
		solana.NewWallet().PublicKey(),
		solana.NewWallet().PublicKey(),
		solana.NewWallet().PublicKey(),
		SideBuy, 10, 15_000_000, 10)
}

func TestBusDeliversToSubscribers(t *testing.T) {
	bus := NewBus(zap.NewNop(), 10)
	defer func() { _ = bus.Shutdown(context.Background()) }()

	var delivered atomic.Int32
	bus.SubscribeFunc(TradeExecuted, func(_ context.Context, event Event) error {
		e, ok := event.(TradeExecutedEvent)
		require.True(t, ok)
		assert.Equal(t, SideBuy, e.Side)
		delivered.Add(1)
		return nil
	})

	require.NoError(t, bus.Publish(tradeEvent()))

	assert.Eventually(t, func() bool {
		return delivered.Load() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestBusIgnoresOtherEventTypes(t *testing.T) {
	bus := NewBus(zap.NewNop(), 10)
	defer func() { _ = bus.Shutdown(context.Background()) }()

	var delivered atomic.Int32
	bus.SubscribeFunc(CurveInitialized, func(context.Context, Event) error {
		delivered.Add(1)
		return nil
	})

	require.NoError(t, bus.PublishSync(context.Background(), tradeEvent()))
	assert.Equal(t, int32(0), delivered.Load())
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus(zap.NewNop(), 10)
	defer func() { _ = bus.Shutdown(context.Background()) }()

	var delivered atomic.Int32
	sub := bus.SubscribeFunc(TradeExecuted, func(context.Context, Event) error {
		delivered.Add(1)
		return nil
	})
	sub.Unsubscribe()

	require.NoError(t, bus.PublishSync(context.Background(), tradeEvent()))
	assert.Equal(t, int32(0), delivered.Load())
}

func TestBusShutdownDrainsBuffer(t *testing.T) {
	bus := NewBus(zap.NewNop(), 10)

	var delivered atomic.Int32
	bus.SubscribeFunc(TradeExecuted, func(context.Context, Event) error {
		delivered.Add(1)
		return nil
	})

	for i := 0; i < 5; i++ {
		require.NoError(t, bus.Publish(tradeEvent()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, bus.Shutdown(ctx))
	assert.Equal(t, int32(5), delivered.Load())

	// Publishing after shutdown fails instead of hanging.
	assert.Error(t, bus.Publish(tradeEvent()))
}
