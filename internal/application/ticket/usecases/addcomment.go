package usecases

import (
	"context"
	"time"

	"fieldops/internal/domain/shared/events"
	"fieldops/internal/domain/ticket"
	"fieldops/internal/shared/authorization"
	"fieldops/internal/shared/errors"
	"fieldops/internal/shared/logger"
	"fieldops/internal/shared/services/markdown"
)

type AddCommentCommand struct {
	TicketID   uint
	Content    string
	AuthorID   uint
	AuthorName string
	Role       authorization.UserRole
}

type AddCommentResult struct {
	ActivityID uint
	TicketID   uint
	CreatedAt  time.Time
}

// AddCommentUseCase appends a comment activity. Comments do not touch the
// ticket's updatedAt; only field-level mutations count as ticket updates.
type AddCommentUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	markdown     markdown.Service
	publisher    events.EventPublisher
	logger       logger.Interface
}

func NewAddCommentUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	markdownSvc markdown.Service,
	publisher events.EventPublisher,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		markdown:     markdownSvc,
		publisher:    publisher,
		logger:       logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*AddCommentResult, error) {
	uc.logger.Infow("executing add comment use case", "ticket_id", cmd.TicketID, "author_id", cmd.AuthorID)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.AuthorID == 0 {
		return nil, errors.NewValidationError("author ID is required")
	}
	if len(cmd.Content) == 0 {
		return nil, errors.NewValidationError("comment content cannot be empty")
	}

	tk, err := uc.ticketRepo.FindByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	if tk == nil || !tk.CanBeViewedBy(cmd.AuthorID, cmd.Role) {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	content := uc.markdown.SanitizeText(cmd.Content)
	if len(content) == 0 {
		return nil, errors.NewValidationError("comment content is empty after sanitization")
	}

	activity, err := ticket.NewComment(tk.ID(), content, cmd.AuthorID, cmd.AuthorName)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.activityRepo.Save(ctx, activity); err != nil {
		uc.logger.Errorw("failed to save comment", "error", err, "ticket_id", tk.ID())
		return nil, err
	}

	evt := ticket.NewCommentAddedEvent(tk.ID(), cmd.AuthorID, activity.CreatedAt())
	if err := uc.publisher.Publish(evt); err != nil {
		uc.logger.Warnw("failed to publish comment added event", "error", err, "ticket_id", tk.ID())
	}

	return &AddCommentResult{
		ActivityID: activity.ID(),
		TicketID:   tk.ID(),
		CreatedAt:  activity.CreatedAt(),
	}, nil
}
