package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldops/internal/domain/ticket"
	vo "fieldops/internal/domain/ticket/valueobjects"
	"fieldops/internal/shared/authorization"
	"fieldops/internal/shared/biztime"
	"fieldops/internal/shared/errors"
	"fieldops/internal/shared/logger"
)

type stubTicketRepo struct {
	mu      sync.Mutex
	tickets []*ticket.Ticket
	err     error
	calls   int
}

func (s *stubTicketRepo) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *stubTicketRepo) listCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubTicketRepo) Save(ctx context.Context, t *ticket.Ticket) error   { return nil }
func (s *stubTicketRepo) Update(ctx context.Context, t *ticket.Ticket) error { return nil }
func (s *stubTicketRepo) Delete(ctx context.Context, id uint) error          { return nil }
func (s *stubTicketRepo) FindByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	return nil, nil
}
func (s *stubTicketRepo) FindByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	return nil, nil
}
func (s *stubTicketRepo) CountByStatus(ctx context.Context, visibleToUserID *uint) (map[vo.TicketStatus]int64, error) {
	return nil, nil
}
func (s *stubTicketRepo) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	return false, nil
}

func (s *stubTicketRepo) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, 0, s.err
	}
	out := s.tickets
	if filter.VisibleToUserID != nil {
		out = ticket.VisibleTo(out, *filter.VisibleToUserID, authorization.RoleFieldEngineer)
	}
	return out, int64(len(out)), nil
}

type stubSource struct {
	ch chan Invalidation
}

func newStubSource() *stubSource {
	return &stubSource{ch: make(chan Invalidation, 16)}
}

func (s *stubSource) Subscribe(ctx context.Context) (<-chan Invalidation, error) {
	return s.ch, nil
}

func (s *stubSource) signal(ticketID uint) {
	s.ch <- Invalidation{TicketID: ticketID, Reason: "updated", OccurredAt: biztime.NowUTC()}
}

func feedTicket(t *testing.T, id uint, creatorID uint) *ticket.Ticket {
	t.Helper()
	now := time.Now().UTC()
	tk, err := ticket.ReconstructTicket(ticket.TicketAttributes{
		ID: id, Number: "TICK-20260828-0001", Title: "fixture",
		TicketType: vo.TypeFault, Priority: vo.PriorityMedium, Status: vo.StatusOpen,
		Location: "Plant A", CreatorID: creatorID, Version: 1,
		CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	return tk
}

func startFeed(t *testing.T, repo *stubTicketRepo, source *stubSource, debounce time.Duration) *TicketFeed {
	t.Helper()
	feed := NewTicketFeed(repo, source, 10, authorization.RoleFieldEngineer, debounce, logger.NewLogger())
	require.NoError(t, feed.Start(context.Background()))
	t.Cleanup(feed.Close)
	return feed
}

func waitForUpdate(t *testing.T, feed *TicketFeed) Snapshot {
	t.Helper()
	select {
	case snap := <-feed.Updates():
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for feed update")
		return Snapshot{}
	}
}

func TestTicketFeed_InitialLoad(t *testing.T) {
	repo := &stubTicketRepo{tickets: []*ticket.Ticket{feedTicket(t, 1, 10)}}
	feed := startFeed(t, repo, newStubSource(), 20*time.Millisecond)

	snap := feed.Snapshot()
	require.Len(t, snap.Tickets, 1)
	assert.False(t, snap.Stale)
	assert.False(t, snap.LoadedAt.IsZero())
}

func TestTicketFeed_DebouncesInvalidationBurst(t *testing.T) {
	repo := &stubTicketRepo{tickets: []*ticket.Ticket{feedTicket(t, 1, 10)}}
	source := newStubSource()
	feed := startFeed(t, repo, source, 50*time.Millisecond)

	// drain the initial-load update
	waitForUpdate(t, feed)
	initialCalls := repo.listCalls()

	for i := 0; i < 10; i++ {
		source.signal(1)
	}

	waitForUpdate(t, feed)
	assert.Equal(t, initialCalls+1, repo.listCalls(), "burst collapses into one reload")
}

func TestTicketFeed_KeepsLastKnownGoodOnLoadError(t *testing.T) {
	repo := &stubTicketRepo{tickets: []*ticket.Ticket{feedTicket(t, 1, 10)}}
	source := newStubSource()
	feed := startFeed(t, repo, source, 10*time.Millisecond)
	waitForUpdate(t, feed)

	repo.setErr(errors.NewPersistenceError("db gone", nil))
	source.signal(1)

	snap := waitForUpdate(t, feed)
	require.Len(t, snap.Tickets, 1, "previous tickets survive the failed reload")
	assert.True(t, snap.Stale)
	assert.NotEmpty(t, snap.LastError)

	// recovery clears the stale flag
	repo.setErr(nil)
	source.signal(1)
	snap = waitForUpdate(t, feed)
	assert.False(t, snap.Stale)
	assert.Empty(t, snap.LastError)
}

func TestTicketFeed_InitialLoadFailureStartsStale(t *testing.T) {
	repo := &stubTicketRepo{}
	repo.setErr(errors.NewPersistenceError("db gone", nil))
	feed := startFeed(t, repo, newStubSource(), 10*time.Millisecond)

	snap := feed.Snapshot()
	assert.True(t, snap.Stale)
	assert.Empty(t, snap.Tickets)
}

func TestTicketFeed_RefreshBypassesDebounce(t *testing.T) {
	repo := &stubTicketRepo{tickets: []*ticket.Ticket{feedTicket(t, 1, 10)}}
	feed := startFeed(t, repo, newStubSource(), time.Hour)
	waitForUpdate(t, feed)

	before := repo.listCalls()
	require.NoError(t, feed.Refresh(context.Background()))
	assert.Equal(t, before+1, repo.listCalls())
}

func TestTicketFeed_VisibilityFilterApplied(t *testing.T) {
	repo := &stubTicketRepo{tickets: []*ticket.Ticket{
		feedTicket(t, 1, 10),
		feedTicket(t, 2, 99),
	}}
	feed := startFeed(t, repo, newStubSource(), 10*time.Millisecond)

	snap := feed.Snapshot()
	require.Len(t, snap.Tickets, 1)
	assert.Equal(t, uint(1), snap.Tickets[0].ID)
}

type failingSource struct{}

func (failingSource) Subscribe(ctx context.Context) (<-chan Invalidation, error) {
	return nil, errors.NewPersistenceError("broker unavailable", nil)
}

func TestTicketFeed_CloseAfterFailedStart(t *testing.T) {
	repo := &stubTicketRepo{}
	feed := NewTicketFeed(repo, failingSource{}, 10, authorization.RoleFieldEngineer, 10*time.Millisecond, logger.NewLogger())

	err := feed.Start(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsRetryable(err))

	closed := make(chan struct{})
	go func() {
		feed.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("Close blocked after a failed Start")
	}
}

func TestTicketFeed_CloseStopsLoop(t *testing.T) {
	repo := &stubTicketRepo{}
	source := newStubSource()
	feed := NewTicketFeed(repo, source, 10, authorization.RoleFieldEngineer, 10*time.Millisecond, logger.NewLogger())
	require.NoError(t, feed.Start(context.Background()))

	feed.Close()

	calls := repo.listCalls()
	source.signal(1)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, calls, repo.listCalls())
}
