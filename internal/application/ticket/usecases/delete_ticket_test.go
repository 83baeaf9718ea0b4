package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldops/internal/domain/ticket"
	vo "fieldops/internal/domain/ticket/valueobjects"
	"fieldops/internal/shared/authorization"
	"fieldops/internal/shared/errors"
)

func TestDeleteTicket_Success(t *testing.T) {
	tk := persistedTicket(t, 1, 10, vo.StatusClosed)
	var deletedTicket, deletedActivities uint

	repo := &mockTicketRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) { return tk, nil },
		DeleteFunc:   func(ctx context.Context, id uint) error { deletedTicket = id; return nil },
	}
	activityRepo := &mockActivityRepository{
		DeleteByTicketIDFunc: func(ctx context.Context, ticketID uint) error { deletedActivities = ticketID; return nil },
	}
	publisher := &mockEventPublisher{}
	uc := NewDeleteTicketUseCase(repo, activityRepo, &mockTxManager{}, publisher, noopLogger{})

	result, err := uc.Execute(context.Background(), DeleteTicketCommand{
		TicketID: 1, DeletedBy: 20, Role: authorization.RoleAdmin,
	})
	require.NoError(t, err)

	assert.False(t, result.AlreadyAbsent)
	assert.Equal(t, uint(1), deletedTicket)
	assert.Equal(t, uint(1), deletedActivities, "activity trail cascades with the ticket")

	require.Len(t, publisher.published, 1)
	assert.Equal(t, ticket.EventTypeTicketDeleted, publisher.published[0].GetEventType())
}

func TestDeleteTicket_AbsentTicketSucceedsWithWarning(t *testing.T) {
	repo := &mockTicketRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) { return nil, nil },
	}
	publisher := &mockEventPublisher{}
	uc := NewDeleteTicketUseCase(repo, &mockActivityRepository{}, &mockTxManager{}, publisher, noopLogger{})

	result, err := uc.Execute(context.Background(), DeleteTicketCommand{
		TicketID: 404, DeletedBy: 20, Role: authorization.RoleAdmin,
	})
	require.NoError(t, err, "the desired end state already holds")
	assert.True(t, result.AlreadyAbsent)
	assert.Empty(t, publisher.published)
}

func TestDeleteTicket_NotFoundErrorAlsoSucceeds(t *testing.T) {
	repo := &mockTicketRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return nil, errors.NewNotFoundError("ticket not found")
		},
	}
	uc := NewDeleteTicketUseCase(repo, &mockActivityRepository{}, &mockTxManager{}, &mockEventPublisher{}, noopLogger{})

	result, err := uc.Execute(context.Background(), DeleteTicketCommand{
		TicketID: 404, DeletedBy: 20, Role: authorization.RoleAdmin,
	})
	require.NoError(t, err)
	assert.True(t, result.AlreadyAbsent)
}

func TestDeleteTicket_RequiresAdmin(t *testing.T) {
	uc := NewDeleteTicketUseCase(&mockTicketRepository{}, &mockActivityRepository{}, &mockTxManager{}, &mockEventPublisher{}, noopLogger{})

	for _, role := range []authorization.UserRole{authorization.RoleSupervisor, authorization.RoleFieldEngineer} {
		_, err := uc.Execute(context.Background(), DeleteTicketCommand{TicketID: 1, DeletedBy: 20, Role: role})
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeForbidden))
	}
}

func TestDeleteTicket_PersistenceFailure(t *testing.T) {
	tk := persistedTicket(t, 1, 10, vo.StatusOpen)
	repo := &mockTicketRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) { return tk, nil },
		DeleteFunc: func(ctx context.Context, id uint) error {
			return errors.NewPersistenceError("delete failed", nil)
		},
	}
	uc := NewDeleteTicketUseCase(repo, &mockActivityRepository{}, &mockTxManager{}, &mockEventPublisher{}, noopLogger{})

	_, err := uc.Execute(context.Background(), DeleteTicketCommand{
		TicketID: 1, DeletedBy: 20, Role: authorization.RoleAdmin,
	})
	require.Error(t, err)
	assert.True(t, errors.IsRetryable(err))
}
