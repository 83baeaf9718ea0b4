package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldops/internal/domain/notification"
	nvo "fieldops/internal/domain/notification/valueobjects"
	"fieldops/internal/domain/ticket"
	vo "fieldops/internal/domain/ticket/valueobjects"
	"fieldops/internal/shared/logger"
)

type mockNotificationRepo struct {
	saved []*notification.Notification

	SaveFunc          func(ctx context.Context, n *notification.Notification) error
	UpdateFunc        func(ctx context.Context, n *notification.Notification) error
	FindByIDFunc      func(ctx context.Context, id uint) (*notification.Notification, error)
	FindByUserIDFunc  func(ctx context.Context, userID uint, page, pageSize int) ([]*notification.Notification, int64, error)
	CountUnreadFunc   func(ctx context.Context, userID uint) (int64, error)
	MarkAllAsReadFunc func(ctx context.Context, userID uint) error
}

func (m *mockNotificationRepo) Save(ctx context.Context, n *notification.Notification) error {
	m.saved = append(m.saved, n)
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, n)
	}
	return nil
}

func (m *mockNotificationRepo) Update(ctx context.Context, n *notification.Notification) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, n)
	}
	return nil
}

func (m *mockNotificationRepo) FindByID(ctx context.Context, id uint) (*notification.Notification, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockNotificationRepo) FindByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*notification.Notification, int64, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID, page, pageSize)
	}
	return nil, 0, nil
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, userID uint) (int64, error) {
	if m.CountUnreadFunc != nil {
		return m.CountUnreadFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockNotificationRepo) MarkAllAsRead(ctx context.Context, userID uint) error {
	if m.MarkAllAsReadFunc != nil {
		return m.MarkAllAsReadFunc(ctx, userID)
	}
	return nil
}

type mockTicketRepo struct {
	FindByIDFunc func(ctx context.Context, id uint) (*ticket.Ticket, error)
}

func (m *mockTicketRepo) Save(ctx context.Context, t *ticket.Ticket) error   { return nil }
func (m *mockTicketRepo) Update(ctx context.Context, t *ticket.Ticket) error { return nil }
func (m *mockTicketRepo) Delete(ctx context.Context, id uint) error          { return nil }
func (m *mockTicketRepo) FindByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}
func (m *mockTicketRepo) FindByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	return nil, nil
}
func (m *mockTicketRepo) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	return nil, 0, nil
}
func (m *mockTicketRepo) CountByStatus(ctx context.Context, visibleToUserID *uint) (map[vo.TicketStatus]int64, error) {
	return nil, nil
}
func (m *mockTicketRepo) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	return false, nil
}

type mockAlertSender struct {
	alerts int
	err    error
}

func (m *mockAlertSender) SendCriticalTicketAlert(ctx context.Context, ticketID uint, number, title string) error {
	m.alerts++
	return m.err
}

func notifierTicket(t *testing.T, creatorID uint, assigneeID *uint) *ticket.Ticket {
	t.Helper()
	now := time.Now().UTC()
	tk, err := ticket.ReconstructTicket(ticket.TicketAttributes{
		ID: 1, Number: "TICK-20260828-0001", Title: "fixture",
		TicketType: vo.TypeFault, Priority: vo.PriorityMedium, Status: vo.StatusOpen,
		Location: "Plant A", CreatorID: creatorID, AssigneeID: assigneeID,
		Version: 1, CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	return tk
}

func TestNotifier_CanHandle(t *testing.T) {
	n := NewTicketEventNotifier(&mockNotificationRepo{}, &mockTicketRepo{}, &mockAlertSender{}, logger.NewLogger())

	assert.True(t, n.CanHandle(ticket.EventTypeTicketAssigned))
	assert.True(t, n.CanHandle(ticket.EventTypeTicketStatusChanged))
	assert.True(t, n.CanHandle(ticket.EventTypeCommentAdded))
	assert.True(t, n.CanHandle(ticket.EventTypeTicketCreated))
	assert.False(t, n.CanHandle(ticket.EventTypeTicketDeleted))
}

func TestNotifier_AssignedEventNotifiesAssignee(t *testing.T) {
	repo := &mockNotificationRepo{}
	n := NewTicketEventNotifier(repo, &mockTicketRepo{}, &mockAlertSender{}, logger.NewLogger())

	evt := ticket.NewTicketAssignedEvent(1, 7, 20, time.Now().UTC())
	require.NoError(t, n.Handle(evt))

	require.Len(t, repo.saved, 1)
	assert.Equal(t, uint(7), repo.saved[0].UserID())
	assert.Equal(t, nvo.TypeTicketAssigned, repo.saved[0].Type())
}

func TestNotifier_SelfAssignmentSkipsNotification(t *testing.T) {
	repo := &mockNotificationRepo{}
	n := NewTicketEventNotifier(repo, &mockTicketRepo{}, &mockAlertSender{}, logger.NewLogger())

	evt := ticket.NewTicketAssignedEvent(1, 7, 7, time.Now().UTC())
	require.NoError(t, n.Handle(evt))
	assert.Empty(t, repo.saved)
}

func TestNotifier_StatusChangeNotifiesCreator(t *testing.T) {
	repo := &mockNotificationRepo{}
	ticketRepo := &mockTicketRepo{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return notifierTicket(t, 10, nil), nil
		},
	}
	n := NewTicketEventNotifier(repo, ticketRepo, &mockAlertSender{}, logger.NewLogger())

	evt := ticket.NewTicketStatusChangedEvent(1, "open", "resolved", 7, time.Now().UTC())
	require.NoError(t, n.Handle(evt))

	require.Len(t, repo.saved, 1)
	assert.Equal(t, uint(10), repo.saved[0].UserID())
	assert.Equal(t, nvo.TypeTicketStatusChanged, repo.saved[0].Type())
}

func TestNotifier_CommentNotifiesCreatorAndAssignee(t *testing.T) {
	assignee := uint(7)
	repo := &mockNotificationRepo{}
	ticketRepo := &mockTicketRepo{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return notifierTicket(t, 10, &assignee), nil
		},
	}
	n := NewTicketEventNotifier(repo, ticketRepo, &mockAlertSender{}, logger.NewLogger())

	// comment by a third party notifies both
	evt := ticket.NewCommentAddedEvent(1, 20, time.Now().UTC())
	require.NoError(t, n.Handle(evt))
	assert.Len(t, repo.saved, 2)

	// comment by the creator notifies only the assignee
	repo.saved = nil
	evt = ticket.NewCommentAddedEvent(1, 10, time.Now().UTC())
	require.NoError(t, n.Handle(evt))
	require.Len(t, repo.saved, 1)
	assert.Equal(t, uint(7), repo.saved[0].UserID())
}

func TestNotifier_CriticalCreationSendsAlert(t *testing.T) {
	alerts := &mockAlertSender{}
	n := NewTicketEventNotifier(&mockNotificationRepo{}, &mockTicketRepo{}, alerts, logger.NewLogger())

	evt := ticket.NewTicketCreatedEvent(1, "TICK-20260828-0001", "Transformer fire", "critical", 10, time.Now().UTC())
	require.NoError(t, n.Handle(evt))
	assert.Equal(t, 1, alerts.alerts)

	evt = ticket.NewTicketCreatedEvent(2, "TICK-20260828-0002", "Routine check", "low", 10, time.Now().UTC())
	require.NoError(t, n.Handle(evt))
	assert.Equal(t, 1, alerts.alerts, "non-critical tickets do not alert")
}
