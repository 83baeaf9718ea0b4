package usecases

import (
	"context"

	"fieldops/internal/domain/shared/events"
	"fieldops/internal/domain/ticket"
	vo "fieldops/internal/domain/ticket/valueobjects"
	"fieldops/internal/domain/user"
	"fieldops/internal/shared/logger"
)

type mockTicketRepository struct {
	SaveFunc           func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc         func(ctx context.Context, t *ticket.Ticket) error
	DeleteFunc         func(ctx context.Context, id uint) error
	FindByIDFunc       func(ctx context.Context, id uint) (*ticket.Ticket, error)
	FindByNumberFunc   func(ctx context.Context, number string) (*ticket.Ticket, error)
	ListFunc           func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error)
	CountByStatusFunc  func(ctx context.Context, visibleToUserID *uint) (map[vo.TicketStatus]int64, error)
	ExistsByNumberFunc func(ctx context.Context, number string) (bool, error)
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockTicketRepository) FindByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTicketRepository) FindByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	if m.FindByNumberFunc != nil {
		return m.FindByNumberFunc(ctx, number)
	}
	return nil, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) CountByStatus(ctx context.Context, visibleToUserID *uint) (map[vo.TicketStatus]int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, visibleToUserID)
	}
	return map[vo.TicketStatus]int64{}, nil
}

func (m *mockTicketRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	if m.ExistsByNumberFunc != nil {
		return m.ExistsByNumberFunc(ctx, number)
	}
	return false, nil
}

type mockActivityRepository struct {
	SaveFunc             func(ctx context.Context, a *ticket.Activity) error
	FindByTicketIDFunc   func(ctx context.Context, ticketID uint) ([]*ticket.Activity, error)
	DeleteByTicketIDFunc func(ctx context.Context, ticketID uint) error
}

func (m *mockActivityRepository) Save(ctx context.Context, a *ticket.Activity) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, a)
	}
	return nil
}

func (m *mockActivityRepository) FindByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Activity, error) {
	if m.FindByTicketIDFunc != nil {
		return m.FindByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockActivityRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	if m.DeleteByTicketIDFunc != nil {
		return m.DeleteByTicketIDFunc(ctx, ticketID)
	}
	return nil
}

type mockProfileRepository struct {
	SaveFunc           func(ctx context.Context, p *user.Profile) error
	UpdateFunc         func(ctx context.Context, p *user.Profile) error
	FindByIDFunc       func(ctx context.Context, id uint) (*user.Profile, error)
	FindByEmailFunc    func(ctx context.Context, email string) (*user.Profile, error)
	FindByIDsFunc      func(ctx context.Context, ids []uint) ([]*user.Profile, error)
	ListAssignableFunc func(ctx context.Context) ([]*user.Profile, error)
}

func (m *mockProfileRepository) Save(ctx context.Context, p *user.Profile) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, p)
	}
	return nil
}

func (m *mockProfileRepository) Update(ctx context.Context, p *user.Profile) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p)
	}
	return nil
}

func (m *mockProfileRepository) FindByID(ctx context.Context, id uint) (*user.Profile, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockProfileRepository) FindByEmail(ctx context.Context, email string) (*user.Profile, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockProfileRepository) FindByIDs(ctx context.Context, ids []uint) ([]*user.Profile, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockProfileRepository) ListAssignable(ctx context.Context) ([]*user.Profile, error) {
	if m.ListAssignableFunc != nil {
		return m.ListAssignableFunc(ctx)
	}
	return nil, nil
}

// mockTxManager runs the unit of work inline without a real transaction.
type mockTxManager struct {
	RunFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunFunc != nil {
		return m.RunFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockEventPublisher struct {
	PublishFunc    func(event events.DomainEvent) error
	PublishAllFunc func(evts []events.DomainEvent) error

	published []events.DomainEvent
}

func (m *mockEventPublisher) Publish(event events.DomainEvent) error {
	m.published = append(m.published, event)
	if m.PublishFunc != nil {
		return m.PublishFunc(event)
	}
	return nil
}

func (m *mockEventPublisher) PublishAll(evts []events.DomainEvent) error {
	m.published = append(m.published, evts...)
	if m.PublishAllFunc != nil {
		return m.PublishAllFunc(evts)
	}
	return nil
}

type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...any)        {}
func (noopLogger) Info(msg string, args ...any)         {}
func (noopLogger) Warn(msg string, args ...any)         {}
func (noopLogger) Error(msg string, args ...any)        {}
func (noopLogger) Fatal(msg string, args ...any)        {}
func (noopLogger) Debugw(msg string, kv ...interface{}) {}
func (noopLogger) Infow(msg string, kv ...interface{})  {}
func (noopLogger) Warnw(msg string, kv ...interface{})  {}
func (noopLogger) Errorw(msg string, kv ...interface{}) {}
func (noopLogger) Fatalw(msg string, kv ...interface{}) {}
func (noopLogger) With(args ...any) logger.Interface    { return noopLogger{} }
func (noopLogger) Named(name string) logger.Interface   { return noopLogger{} }
