package pubsub

import (
	"context"
	"strings"
	"sync"

	"fieldops/internal/application/ticket/services"
	"fieldops/internal/domain/shared/events"
	"fieldops/internal/shared/logger"
)

// LocalTicketChangeBus is the in-process change feed used when Redis is not
// configured (single instance, offline-first local store). Same contract as
// the Redis bus, minus the network.
type LocalTicketChangeBus struct {
	logger logger.Interface

	mu     sync.Mutex
	nextID int
	subs   map[int]chan services.Invalidation
}

func NewLocalTicketChangeBus(log logger.Interface) *LocalTicketChangeBus {
	return &LocalTicketChangeBus{
		logger: log.Named("local-change-bus"),
		subs:   make(map[int]chan services.Invalidation),
	}
}

func (b *LocalTicketChangeBus) CanHandle(eventType string) bool {
	return strings.HasPrefix(eventType, "ticket.")
}

func (b *LocalTicketChangeBus) Handle(event events.DomainEvent) error {
	inv := services.Invalidation{
		TicketID:   parseAggregateID(event.GetAggregateID()),
		Reason:     event.GetEventType(),
		OccurredAt: event.GetOccurredAt(),
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		// Non-blocking: a subscriber that is not draining loses the signal,
		// which only delays its reload until the next one.
		select {
		case ch <- inv:
		default:
		}
	}
	return nil
}

func (b *LocalTicketChangeBus) Subscribe(ctx context.Context) (<-chan services.Invalidation, error) {
	ch := make(chan services.Invalidation, 16)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
		close(ch)
	}()

	return ch, nil
}

var _ events.EventHandler = (*LocalTicketChangeBus)(nil)
var _ services.InvalidationSource = (*LocalTicketChangeBus)(nil)
