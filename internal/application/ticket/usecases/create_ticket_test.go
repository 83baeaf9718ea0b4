package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldops/internal/domain/ticket"
	vo "fieldops/internal/domain/ticket/valueobjects"
	"fieldops/internal/shared/errors"
)

func persistedTicket(t *testing.T, id uint, creatorID uint, status vo.TicketStatus) *ticket.Ticket {
	t.Helper()
	now := time.Now().UTC()
	tk, err := ticket.ReconstructTicket(ticket.TicketAttributes{
		ID:          id,
		Number:      "TICK-20260828-0001",
		Title:       "Pump 3 leaking",
		Description: "Hydraulic fluid under pump 3",
		TicketType:  vo.TypeFault,
		Priority:    vo.PriorityMedium,
		Status:      status,
		Location:    "Plant A",
		CreatorID:   creatorID,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	require.NoError(t, err)
	return tk
}

func validCreateCommand() CreateTicketCommand {
	return CreateTicketCommand{
		Title:       "Pump 3 leaking",
		Description: "Hydraulic fluid under pump 3",
		Type:        "fault",
		Priority:    "high",
		Location:    "Plant A / Hall 2",
		CreatorID:   10,
	}
}

func TestCreateTicket_Success(t *testing.T) {
	var saved *ticket.Ticket
	repo := &mockTicketRepository{
		SaveFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			require.NoError(t, tk.SetID(42))
			saved = tk
			return nil
		},
	}
	publisher := &mockEventPublisher{}
	var opening *ticket.Activity
	activities := &mockActivityRepository{
		SaveFunc: func(ctx context.Context, a *ticket.Activity) error {
			opening = a
			return nil
		},
	}
	uc := NewCreateTicketUseCase(repo, activities, ticket.NewDefaultNumberGenerator(), &mockTxManager{}, publisher, noopLogger{})

	result, err := uc.Execute(context.Background(), validCreateCommand())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, uint(42), result.TicketID)
	assert.Equal(t, "open", result.Status)
	assert.Contains(t, result.Number, "TICK-")
	require.NotNil(t, saved)
	assert.Equal(t, vo.PriorityHigh, saved.Priority())

	// the audit trail opens with a "ticket created" comment
	require.NotNil(t, opening)
	assert.Equal(t, uint(42), opening.TicketID())
	assert.Equal(t, vo.ActivityComment, opening.Type())
	assert.Equal(t, "ticket created", opening.Content())

	require.Len(t, publisher.published, 1)
	assert.Equal(t, ticket.EventTypeTicketCreated, publisher.published[0].GetEventType())
}

func TestCreateTicket_DefaultsPriorityToMedium(t *testing.T) {
	repo := &mockTicketRepository{
		SaveFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			return tk.SetID(1)
		},
	}
	uc := NewCreateTicketUseCase(repo, &mockActivityRepository{}, ticket.NewDefaultNumberGenerator(), &mockTxManager{}, &mockEventPublisher{}, noopLogger{})

	cmd := validCreateCommand()
	cmd.Priority = ""
	result, err := uc.Execute(context.Background(), cmd)
	require.NoError(t, err)
	require.NotNil(t, result)
}

func TestCreateTicket_ValidationFailures(t *testing.T) {
	uc := NewCreateTicketUseCase(&mockTicketRepository{}, &mockActivityRepository{}, ticket.NewDefaultNumberGenerator(), &mockTxManager{}, &mockEventPublisher{}, noopLogger{})

	tests := []struct {
		name   string
		mutate func(*CreateTicketCommand)
	}{
		{"empty title", func(c *CreateTicketCommand) { c.Title = "" }},
		{"empty location", func(c *CreateTicketCommand) { c.Location = "" }},
		{"zero creator", func(c *CreateTicketCommand) { c.CreatorID = 0 }},
		{"bad type", func(c *CreateTicketCommand) { c.Type = "incident" }},
		{"bad priority", func(c *CreateTicketCommand) { c.Priority = "urgent" }},
		{"lat without lng", func(c *CreateTicketCommand) { lat := 48.1; c.Latitude = &lat }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := validCreateCommand()
			tt.mutate(&cmd)
			result, err := uc.Execute(context.Background(), cmd)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, errors.IsValidation(err))
		})
	}
}

func TestCreateTicket_RegeneratesOnNumberCollision(t *testing.T) {
	calls := 0
	repo := &mockTicketRepository{
		ExistsByNumberFunc: func(ctx context.Context, number string) (bool, error) {
			calls++
			return calls == 1, nil
		},
		SaveFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			return tk.SetID(1)
		},
	}
	uc := NewCreateTicketUseCase(repo, &mockActivityRepository{}, ticket.NewDefaultNumberGenerator(), &mockTxManager{}, &mockEventPublisher{}, noopLogger{})

	_, err := uc.Execute(context.Background(), validCreateCommand())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCreateTicket_SaveFailurePropagates(t *testing.T) {
	repo := &mockTicketRepository{
		SaveFunc: func(ctx context.Context, tk *ticket.Ticket) error {
			return errors.NewPersistenceError("insert failed", nil)
		},
	}
	uc := NewCreateTicketUseCase(repo, &mockActivityRepository{}, ticket.NewDefaultNumberGenerator(), &mockTxManager{}, &mockEventPublisher{}, noopLogger{})

	result, err := uc.Execute(context.Background(), validCreateCommand())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsRetryable(err))
}
