package pubsub

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldops/internal/application/ticket/services"
	"fieldops/internal/domain/shared/events"
	"fieldops/internal/shared/logger"
)

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func makeEvent(eventType, aggregateID string) events.DomainEvent {
	return events.BaseEvent{
		AggregateID: aggregateID,
		EventType:   eventType,
		OccurredAt:  time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
	}
}

func TestLocalTicketChangeBus_CanHandle(t *testing.T) {
	bus := NewLocalTicketChangeBus(testLogger())

	assert.True(t, bus.CanHandle("ticket.created"))
	assert.True(t, bus.CanHandle("ticket.status_changed"))
	assert.False(t, bus.CanHandle("notification.sent"))
}

func TestLocalTicketChangeBus_DeliversToSubscribers(t *testing.T) {
	bus := NewLocalTicketChangeBus(testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch1, err := bus.Subscribe(ctx)
	require.NoError(t, err)
	ch2, err := bus.Subscribe(ctx)
	require.NoError(t, err)

	require.NoError(t, bus.Handle(makeEvent("ticket.updated", "42")))

	for _, ch := range []<-chan services.Invalidation{ch1, ch2} {
		select {
		case inv := <-ch:
			assert.Equal(t, uint(42), inv.TicketID)
			assert.Equal(t, "ticket.updated", inv.Reason)
		case <-time.After(time.Second):
			t.Fatal("expected invalidation")
		}
	}
}

func TestLocalTicketChangeBus_UnsubscribesOnCancel(t *testing.T) {
	bus := NewLocalTicketChangeBus(testLogger())
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := bus.Subscribe(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}

	// Publishing after unsubscribe must not panic.
	assert.NoError(t, bus.Handle(makeEvent("ticket.deleted", "42")))
}

func TestParseAggregateID(t *testing.T) {
	assert.Equal(t, uint(7), parseAggregateID("7"))
	assert.Zero(t, parseAggregateID("not-a-number"))
}
