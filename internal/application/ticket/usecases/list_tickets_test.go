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

func TestListTickets_AdminSeesAll(t *testing.T) {
	var captured ticket.TicketFilter
	repo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
			captured = filter
			return []*ticket.Ticket{persistedTicket(t, 1, 10, vo.StatusOpen)}, 1, nil
		},
	}
	uc := NewListTicketsUseCase(repo, noopLogger{})

	result, err := uc.Execute(context.Background(), ListTicketsQuery{UserID: 99, Role: authorization.RoleAdmin})
	require.NoError(t, err)

	assert.Nil(t, captured.VisibleToUserID)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Tickets, 1)
	assert.Equal(t, "TICK-20260828-0001", result.Tickets[0].Number)
}

func TestListTickets_NonAdminRestrictedToOwn(t *testing.T) {
	var captured ticket.TicketFilter
	repo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
			captured = filter
			return nil, 0, nil
		},
	}
	uc := NewListTicketsUseCase(repo, noopLogger{})

	for _, role := range []authorization.UserRole{authorization.RoleSupervisor, authorization.RoleFieldEngineer} {
		_, err := uc.Execute(context.Background(), ListTicketsQuery{UserID: 7, Role: role})
		require.NoError(t, err)
		require.NotNil(t, captured.VisibleToUserID)
		assert.Equal(t, uint(7), *captured.VisibleToUserID)
	}
}

func TestListTickets_FilterValidation(t *testing.T) {
	uc := NewListTicketsUseCase(&mockTicketRepository{}, noopLogger{})

	_, err := uc.Execute(context.Background(), ListTicketsQuery{UserID: 7, Role: authorization.RoleAdmin, Status: "done"})
	assert.True(t, errors.IsValidation(err))

	_, err = uc.Execute(context.Background(), ListTicketsQuery{UserID: 7, Role: authorization.RoleAdmin, Priority: "urgent"})
	assert.True(t, errors.IsValidation(err))

	_, err = uc.Execute(context.Background(), ListTicketsQuery{UserID: 7, Role: authorization.RoleAdmin, Type: "incident"})
	assert.True(t, errors.IsValidation(err))

	_, err = uc.Execute(context.Background(), ListTicketsQuery{UserID: 0, Role: authorization.RoleAdmin})
	assert.True(t, errors.IsValidation(err))
}

func TestListTickets_PaginationClamped(t *testing.T) {
	var captured ticket.TicketFilter
	repo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
			captured = filter
			return nil, 0, nil
		},
	}
	uc := NewListTicketsUseCase(repo, noopLogger{})

	_, err := uc.Execute(context.Background(), ListTicketsQuery{
		UserID: 7, Role: authorization.RoleAdmin, Page: -1, PageSize: 10000,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, captured.Page)
	assert.Equal(t, 100, captured.PageSize)
}

func TestListTickets_SortAndOverduePassedThrough(t *testing.T) {
	var captured ticket.TicketFilter
	repo := &mockTicketRepository{
		ListFunc: func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
			captured = filter
			return nil, 0, nil
		},
	}
	uc := NewListTicketsUseCase(repo, noopLogger{})

	_, err := uc.Execute(context.Background(), ListTicketsQuery{
		UserID: 7, Role: authorization.RoleAdmin, SortBy: ticket.SortKeyPriority, Overdue: true,
	})
	require.NoError(t, err)
	assert.Equal(t, ticket.SortKeyPriority, captured.SortBy)
	assert.True(t, captured.Overdue)

	_, err = uc.Execute(context.Background(), ListTicketsQuery{
		UserID: 7, Role: authorization.RoleAdmin, SortBy: "due_date",
	})
	assert.True(t, errors.IsValidation(err))
}

func TestGetTicketStats(t *testing.T) {
	repo := &mockTicketRepository{
		CountByStatusFunc: func(ctx context.Context, visibleToUserID *uint) (map[vo.TicketStatus]int64, error) {
			require.NotNil(t, visibleToUserID)
			return map[vo.TicketStatus]int64{
				vo.StatusOpen:       3,
				vo.StatusInProgress: 2,
				vo.StatusResolved:   1,
			}, nil
		},
	}
	uc := NewGetTicketStatsUseCase(repo, noopLogger{})

	result, err := uc.Execute(context.Background(), GetTicketStatsQuery{UserID: 7, Role: authorization.RoleFieldEngineer})
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Open)
	assert.Equal(t, int64(2), result.InProgress)
	assert.Equal(t, int64(1), result.Resolved)
	assert.Equal(t, int64(6), result.Total)
}
