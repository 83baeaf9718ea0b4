package services

import (
	"context"
	"sync"
	"time"

	"fieldops/internal/application/ticket/dto"
	"fieldops/internal/domain/ticket"
	"fieldops/internal/shared/authorization"
	"fieldops/internal/shared/biztime"
	"fieldops/internal/shared/errors"
	"fieldops/internal/shared/goroutine"
	"fieldops/internal/shared/logger"
)

// Invalidation is a change-feed signal. It carries no row data; receivers
// treat it purely as "your snapshot may be stale, reload".
type Invalidation struct {
	TicketID   uint
	Reason     string
	OccurredAt time.Time
}

// InvalidationSource delivers invalidation signals for the ticket collection.
// The returned channel closes when ctx is cancelled.
type InvalidationSource interface {
	Subscribe(ctx context.Context) (<-chan Invalidation, error)
}

// Snapshot is the feed's current view. Stale is set when the last reload
// failed and the tickets shown are the previous known-good result.
type Snapshot struct {
	Tickets   []dto.TicketListItemDTO
	Total     int64
	LoadedAt  time.Time
	Stale     bool
	LastError string
}

// TicketFeed maintains a per-session ticket snapshot that follows the change
// feed. Invalidation bursts are debounced into a single reload; a failed
// reload keeps the last-known-good snapshot and marks it stale instead of
// wiping it.
type TicketFeed struct {
	ticketRepo ticket.TicketRepository
	source     InvalidationSource
	userID     uint
	role       authorization.UserRole
	debounce   time.Duration
	logger     logger.Interface

	mu       sync.RWMutex
	snapshot Snapshot

	updates chan Snapshot
	cancel  context.CancelFunc
	done    chan struct{}
}

const defaultDebounce = 300 * time.Millisecond

func NewTicketFeed(
	ticketRepo ticket.TicketRepository,
	source InvalidationSource,
	userID uint,
	role authorization.UserRole,
	debounce time.Duration,
	log logger.Interface,
) *TicketFeed {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &TicketFeed{
		ticketRepo: ticketRepo,
		source:     source,
		userID:     userID,
		role:       role,
		debounce:   debounce,
		logger:     log.Named("ticket-feed"),
		updates:    make(chan Snapshot, 1),
		done:       make(chan struct{}),
	}
}

// Start performs the initial load and begins following the change feed.
// An initial load failure does not abort the feed; it starts stale and
// recovers on the next successful reload.
func (f *TicketFeed) Start(ctx context.Context) error {
	ctx, f.cancel = context.WithCancel(ctx)

	if err := f.reload(ctx); err != nil {
		f.logger.Warnw("initial feed load failed, starting stale", "error", err, "user_id", f.userID)
	}

	signals, err := f.source.Subscribe(ctx)
	if err != nil {
		f.cancel()
		// the loop never ran, so Close must not wait on it
		close(f.done)
		return errors.NewLoadError("failed to subscribe to ticket change feed", err)
	}

	goroutine.SafeGo(f.logger, "ticket-feed-loop", func() {
		defer close(f.done)
		f.loop(ctx, signals)
	})

	return nil
}

// Snapshot returns the current view.
func (f *TicketFeed) Snapshot() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snapshot
}

// Updates delivers a snapshot after every reload. The channel holds only the
// latest snapshot; slow consumers never block the feed.
func (f *TicketFeed) Updates() <-chan Snapshot {
	return f.updates
}

// Refresh forces an immediate reload, bypassing the debounce window.
func (f *TicketFeed) Refresh(ctx context.Context) error {
	return f.reload(ctx)
}

// Close stops the feed loop and waits for it to drain.
func (f *TicketFeed) Close() {
	if f.cancel != nil {
		f.cancel()
		<-f.done
	}
}

func (f *TicketFeed) loop(ctx context.Context, signals <-chan Invalidation) {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case sig, ok := <-signals:
			if !ok {
				return
			}
			f.logger.Debugw("invalidation received", "ticket_id", sig.TicketID, "reason", sig.Reason)
			// restart the debounce window; a burst of signals collapses
			// into one reload
			if timer == nil {
				timer = time.NewTimer(f.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(f.debounce)
			}

		case <-timerC:
			timerC = nil
			timer = nil
			if err := f.reload(ctx); err != nil {
				f.logger.Warnw("feed reload failed, keeping last snapshot", "error", err, "user_id", f.userID)
			}
		}
	}
}

func (f *TicketFeed) reload(ctx context.Context) error {
	filter := ticket.TicketFilter{Page: 1, PageSize: 100}
	if !f.role.CanViewAllTickets() {
		userID := f.userID
		filter.VisibleToUserID = &userID
	}

	tickets, total, err := f.ticketRepo.List(ctx, filter)
	if err != nil {
		f.markStale(err)
		return errors.NewLoadError("failed to reload ticket feed", err)
	}

	items := make([]dto.TicketListItemDTO, 0, len(tickets))
	for _, t := range ticket.SortedByCreatedAtDesc(tickets) {
		items = append(items, dto.ToTicketListItemDTO(t))
	}

	f.mu.Lock()
	f.snapshot = Snapshot{
		Tickets:  items,
		Total:    total,
		LoadedAt: biztime.NowUTC(),
	}
	snap := f.snapshot
	f.mu.Unlock()

	f.publish(snap)
	return nil
}

// markStale flags the current snapshot without discarding its tickets.
func (f *TicketFeed) markStale(cause error) {
	f.mu.Lock()
	f.snapshot.Stale = true
	f.snapshot.LastError = cause.Error()
	snap := f.snapshot
	f.mu.Unlock()

	f.publish(snap)
}

func (f *TicketFeed) publish(snap Snapshot) {
	// drop the stale queued snapshot, keep only the newest
	select {
	case <-f.updates:
	default:
	}
	select {
	case f.updates <- snap:
	default:
	}
}
