package usecases

import (
	"context"

	"fieldops/internal/domain/shared/events"
	"fieldops/internal/domain/ticket"
	"fieldops/internal/shared/authorization"
	"fieldops/internal/shared/biztime"
	"fieldops/internal/shared/errors"
	"fieldops/internal/shared/logger"
)

type DeleteTicketCommand struct {
	TicketID  uint
	DeletedBy uint
	Role      authorization.UserRole
}

type DeleteTicketResult struct {
	TicketID uint
	// AlreadyAbsent is set when the ticket was gone before the delete ran.
	// The operation still succeeds; callers may surface it as a warning.
	AlreadyAbsent bool
}

type DeleteTicketUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	txManager    TransactionManager
	publisher    events.EventPublisher
	logger       logger.Interface
}

func NewDeleteTicketUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	txManager TransactionManager,
	publisher events.EventPublisher,
	logger logger.Interface,
) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		txManager:    txManager,
		publisher:    publisher,
		logger:       logger,
	}
}

func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) (*DeleteTicketResult, error) {
	uc.logger.Infow("executing delete ticket use case", "ticket_id", cmd.TicketID, "deleted_by", cmd.DeletedBy)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.DeletedBy == 0 {
		return nil, errors.NewValidationError("deleted by user ID is required")
	}
	if !cmd.Role.CanDeleteTickets() {
		return nil, errors.NewForbiddenError("only admins can delete tickets")
	}

	tk, err := uc.ticketRepo.FindByID(ctx, cmd.TicketID)
	if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}
	if tk == nil {
		// deleting an absent ticket is a success; the desired end state holds
		uc.logger.Warnw("delete requested for absent ticket", "ticket_id", cmd.TicketID)
		return &DeleteTicketResult{TicketID: cmd.TicketID, AlreadyAbsent: true}, nil
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.activityRepo.DeleteByTicketID(txCtx, tk.ID()); err != nil {
			return err
		}
		return uc.ticketRepo.Delete(txCtx, tk.ID())
	})
	if err != nil {
		uc.logger.Errorw("failed to delete ticket", "error", err, "ticket_id", tk.ID())
		return nil, err
	}

	evt := ticket.NewTicketDeletedEvent(tk.ID(), cmd.DeletedBy, biztime.NowUTC())
	if err := uc.publisher.Publish(evt); err != nil {
		uc.logger.Warnw("failed to publish ticket deleted event", "error", err, "ticket_id", tk.ID())
	}

	uc.logger.Infow("ticket deleted", "ticket_id", tk.ID(), "number", tk.Number())

	return &DeleteTicketResult{TicketID: tk.ID()}, nil
}
