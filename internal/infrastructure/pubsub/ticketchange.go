// Package pubsub carries the ticket change feed between instances. Mutation
// use cases publish domain events in-process; the bus republishes them as
// compact invalidation signals that per-session feeds subscribe to.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"fieldops/internal/application/ticket/services"
	"fieldops/internal/domain/shared/events"
	"fieldops/internal/shared/goroutine"
	"fieldops/internal/shared/logger"
)

const ticketChangeChannel = "fieldops:tickets:changed"

const publishTimeout = 5 * time.Second

// ticketChangeMessage is the wire form of an invalidation. It deliberately
// carries no ticket fields; receivers reload from the repository.
type ticketChangeMessage struct {
	TicketID   uint   `json:"ticket_id"`
	Reason     string `json:"reason"`
	OccurredAt int64  `json:"occurred_at"`
}

// RedisTicketChangeBus relays ticket domain events over Redis Pub/Sub. It is
// both an event handler (publish side) and an invalidation source (subscribe
// side).
type RedisTicketChangeBus struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisTicketChangeBus(client *redis.Client, log logger.Interface) *RedisTicketChangeBus {
	return &RedisTicketChangeBus{
		client: client,
		logger: log.Named("ticket-change-bus"),
	}
}

// CanHandle implements events.EventHandler. Every ticket event invalidates
// the collection.
func (b *RedisTicketChangeBus) CanHandle(eventType string) bool {
	return strings.HasPrefix(eventType, "ticket.")
}

// Handle implements events.EventHandler by republishing the event as an
// invalidation signal.
func (b *RedisTicketChangeBus) Handle(event events.DomainEvent) error {
	msg := ticketChangeMessage{
		TicketID:   parseAggregateID(event.GetAggregateID()),
		Reason:     event.GetEventType(),
		OccurredAt: event.GetOccurredAt().UnixMilli(),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal ticket change message: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := b.client.Publish(ctx, ticketChangeChannel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish ticket change",
			"ticket_id", msg.TicketID,
			"reason", msg.Reason,
			"error", err,
		)
		return fmt.Errorf("failed to publish ticket change: %w", err)
	}

	b.logger.Debugw("ticket change published",
		"ticket_id", msg.TicketID,
		"reason", msg.Reason,
	)
	return nil
}

// Subscribe implements services.InvalidationSource. The returned channel
// closes when ctx is cancelled. Disconnects reconnect with exponential
// backoff; a reconnect gap may drop signals, which is acceptable because the
// feed does a full reload on every signal anyway.
func (b *RedisTicketChangeBus) Subscribe(ctx context.Context) (<-chan services.Invalidation, error) {
	out := make(chan services.Invalidation)

	goroutine.SafeGo(b.logger, "ticket-change-subscriber", func() {
		defer close(out)

		backoff := time.Second
		maxBackoff := 30 * time.Second

		for {
			err := b.consume(ctx, out)
			if ctx.Err() != nil {
				return
			}

			b.logger.Warnw("ticket change subscription disconnected, reconnecting",
				"error", err,
				"backoff", backoff,
			)

			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}

			backoff = min(backoff*2, maxBackoff)
		}
	})

	return out, nil
}

func (b *RedisTicketChangeBus) consume(ctx context.Context, out chan<- services.Invalidation) error {
	sub := b.client.Subscribe(ctx, ticketChangeChannel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", ticketChangeChannel, err)
	}

	b.logger.Infow("subscribed to ticket change channel", "channel", ticketChangeChannel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var change ticketChangeMessage
			if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
				b.logger.Warnw("failed to unmarshal ticket change", "payload", msg.Payload, "error", err)
				continue
			}

			inv := services.Invalidation{
				TicketID:   change.TicketID,
				Reason:     change.Reason,
				OccurredAt: time.UnixMilli(change.OccurredAt).UTC(),
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case out <- inv:
			}
		}
	}
}

func parseAggregateID(id string) uint {
	v, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}

var _ events.EventHandler = (*RedisTicketChangeBus)(nil)
var _ services.InvalidationSource = (*RedisTicketChangeBus)(nil)
