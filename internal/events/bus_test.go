package events

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testEvent(typ EventType) Event {
	return &TradeSettledEvent{
		BaseEvent: BaseEvent{EventType: typ, EventTime: time.Now()},
		Mint:      solana.NewWallet().PublicKey(),
	}
}

func TestPublishDeliversToSubscriber(t *testing.T) {
	bus := NewBus(zaptest.NewLogger(t), 16)
	defer shutdownBus(t, bus)

	received := make(chan Event, 1)
	bus.SubscribeFunc(TradeSettled, func(_ context.Context, e Event) error {
		received <- e
		return nil
	})

	evt := testEvent(TradeSettled)
	require.NoError(t, bus.Publish(evt))

	select {
	case got := <-received:
		require.Equal(t, evt, got)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestPublishIgnoresOtherTypes(t *testing.T) {
	bus := NewBus(zaptest.NewLogger(t), 16)
	defer shutdownBus(t, bus)

	var calls atomic.Int64
	bus.SubscribeFunc(Graduated, func(context.Context, Event) error {
		calls.Add(1)
		return nil
	})

	require.NoError(t, bus.PublishSync(context.Background(), testEvent(TradeSettled)))
	require.Zero(t, calls.Load())

	require.NoError(t, bus.PublishSync(context.Background(), testEvent(Graduated)))
	require.Equal(t, int64(1), calls.Load())
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus(zaptest.NewLogger(t), 16)
	defer shutdownBus(t, bus)

	var calls atomic.Int64
	sub := bus.SubscribeFunc(TradeSettled, func(context.Context, Event) error {
		calls.Add(1)
		return nil
	})

	require.NoError(t, bus.PublishSync(context.Background(), testEvent(TradeSettled)))
	sub.Unsubscribe()
	require.NoError(t, bus.PublishSync(context.Background(), testEvent(TradeSettled)))

	require.Equal(t, int64(1), calls.Load())
}

func TestPublishSyncReportsHandlerErrors(t *testing.T) {
	bus := NewBus(zaptest.NewLogger(t), 16)
	defer shutdownBus(t, bus)

	bus.SubscribeFunc(TradeSettled, func(context.Context, Event) error {
		return context.DeadlineExceeded
	})

	err := bus.PublishSync(context.Background(), testEvent(TradeSettled))
	require.Error(t, err)
}

func TestPublishAfterShutdown(t *testing.T) {
	bus := NewBus(zaptest.NewLogger(t), 16)
	shutdownBus(t, bus)

	require.Error(t, bus.Publish(testEvent(TradeSettled)))
}

func TestShutdownDrainsInFlightEvents(t *testing.T) {
	bus := NewBus(zaptest.NewLogger(t), 64)

	var calls atomic.Int64
	bus.SubscribeFunc(TradeSettled, func(context.Context, Event) error {
		calls.Add(1)
		return nil
	})

	for i := 0; i < 10; i++ {
		require.NoError(t, bus.Publish(testEvent(TradeSettled)))
	}
	shutdownBus(t, bus)

	require.Equal(t, int64(10), calls.Load())
}

func shutdownBus(t *testing.T, bus *Bus) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, bus.Shutdown(ctx))
}
