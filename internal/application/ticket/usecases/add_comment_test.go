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
	"fieldops/internal/shared/services/markdown"
)

func newAddCommentUseCase(repo *mockTicketRepository, activityRepo *mockActivityRepository) (*AddCommentUseCase, *mockEventPublisher) {
	publisher := &mockEventPublisher{}
	uc := NewAddCommentUseCase(repo, activityRepo, markdown.NewService(), publisher, noopLogger{})
	return uc, publisher
}

func TestAddComment_Success(t *testing.T) {
	tk := persistedTicket(t, 1, 10, vo.StatusOpen)
	var saved *ticket.Activity

	repo := &mockTicketRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) { return tk, nil },
	}
	activityRepo := &mockActivityRepository{
		SaveFunc: func(ctx context.Context, a *ticket.Activity) error {
			require.NoError(t, a.SetID(99))
			saved = a
			return nil
		},
	}
	uc, publisher := newAddCommentUseCase(repo, activityRepo)

	result, err := uc.Execute(context.Background(), AddCommentCommand{
		TicketID: 1, Content: "Replaced the seal", AuthorID: 10, AuthorName: "Dana", Role: authorization.RoleFieldEngineer,
	})
	require.NoError(t, err)

	assert.Equal(t, uint(99), result.ActivityID)
	require.NotNil(t, saved)
	assert.Equal(t, vo.ActivityComment, saved.Type())
	assert.Equal(t, "Replaced the seal", saved.Content())

	require.Len(t, publisher.published, 1)
	assert.Equal(t, ticket.EventTypeCommentAdded, publisher.published[0].GetEventType())
}

func TestAddComment_DoesNotTouchTicket(t *testing.T) {
	tk := persistedTicket(t, 1, 10, vo.StatusOpen)
	before := tk.UpdatedAt()
	updateCalled := false

	repo := &mockTicketRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) { return tk, nil },
		UpdateFunc:   func(ctx context.Context, t *ticket.Ticket) error { updateCalled = true; return nil },
	}
	uc, _ := newAddCommentUseCase(repo, &mockActivityRepository{})

	_, err := uc.Execute(context.Background(), AddCommentCommand{
		TicketID: 1, Content: "status?", AuthorID: 10, Role: authorization.RoleFieldEngineer,
	})
	require.NoError(t, err)
	assert.False(t, updateCalled, "comments never write the ticket row")
	assert.Equal(t, before, tk.UpdatedAt())
}

func TestAddComment_StripsMarkup(t *testing.T) {
	tk := persistedTicket(t, 1, 10, vo.StatusOpen)
	var saved *ticket.Activity

	repo := &mockTicketRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) { return tk, nil },
	}
	activityRepo := &mockActivityRepository{
		SaveFunc: func(ctx context.Context, a *ticket.Activity) error { saved = a; return nil },
	}
	uc, _ := newAddCommentUseCase(repo, activityRepo)

	_, err := uc.Execute(context.Background(), AddCommentCommand{
		TicketID: 1, Content: `done <script>alert("x")</script>`, AuthorID: 10, Role: authorization.RoleFieldEngineer,
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.NotContains(t, saved.Content(), "<script>")
	assert.Contains(t, saved.Content(), "done")
}

func TestAddComment_EmptyAfterSanitization(t *testing.T) {
	tk := persistedTicket(t, 1, 10, vo.StatusOpen)
	repo := &mockTicketRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) { return tk, nil },
	}
	uc, _ := newAddCommentUseCase(repo, &mockActivityRepository{})

	_, err := uc.Execute(context.Background(), AddCommentCommand{
		TicketID: 1, Content: `<script>alert("x")</script>`, AuthorID: 10, Role: authorization.RoleFieldEngineer,
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestAddComment_HiddenTicketReportsNotFound(t *testing.T) {
	tk := persistedTicket(t, 1, 10, vo.StatusOpen)
	repo := &mockTicketRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) { return tk, nil },
	}
	uc, _ := newAddCommentUseCase(repo, &mockActivityRepository{})

	_, err := uc.Execute(context.Background(), AddCommentCommand{
		TicketID: 1, Content: "hi", AuthorID: 999, Role: authorization.RoleFieldEngineer,
	})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestAddComment_Validation(t *testing.T) {
	uc, _ := newAddCommentUseCase(&mockTicketRepository{}, &mockActivityRepository{})

	_, err := uc.Execute(context.Background(), AddCommentCommand{TicketID: 0, Content: "x", AuthorID: 1})
	assert.True(t, errors.IsValidation(err))

	_, err = uc.Execute(context.Background(), AddCommentCommand{TicketID: 1, Content: "", AuthorID: 1})
	assert.True(t, errors.IsValidation(err))

	_, err = uc.Execute(context.Background(), AddCommentCommand{TicketID: 1, Content: "x", AuthorID: 0})
	assert.True(t, errors.IsValidation(err))
}
