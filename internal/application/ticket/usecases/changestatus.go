package usecases

import (
	"context"
	"time"

	"fieldops/internal/domain/shared/events"
	"fieldops/internal/domain/ticket"
	vo "fieldops/internal/domain/ticket/valueobjects"
	"fieldops/internal/shared/authorization"
	"fieldops/internal/shared/errors"
	"fieldops/internal/shared/logger"
)

type ChangeStatusCommand struct {
	TicketID      uint
	NewStatus     string
	ChangedBy     uint
	ChangedByName string
	Role          authorization.UserRole
}

type ChangeStatusResult struct {
	TicketID   uint
	OldStatus  string
	NewStatus  string
	ResolvedAt *time.Time
	VerifiedAt *time.Time
	UpdatedAt  time.Time
}

type ChangeStatusUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	txManager    TransactionManager
	policy       vo.TransitionPolicy
	publisher    events.EventPublisher
	logger       logger.Interface
}

func NewChangeStatusUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	txManager TransactionManager,
	policy vo.TransitionPolicy,
	publisher events.EventPublisher,
	logger logger.Interface,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		txManager:    txManager,
		policy:       policy,
		publisher:    publisher,
		logger:       logger,
	}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (*ChangeStatusResult, error) {
	uc.logger.Infow("executing change status use case",
		"ticket_id", cmd.TicketID, "new_status", cmd.NewStatus, "changed_by", cmd.ChangedBy)

	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	newStatus := vo.TicketStatus(cmd.NewStatus)

	tk, err := uc.ticketRepo.FindByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	if tk == nil || !tk.CanBeViewedBy(cmd.ChangedBy, cmd.Role) {
		// non-visible tickets are reported as absent to avoid leaking existence
		return nil, errors.NewNotFoundError("ticket not found")
	}

	if newStatus.IsVerified() && !cmd.Role.CanVerifyTickets() {
		return nil, errors.NewForbiddenError("only supervisors and admins can verify tickets")
	}

	oldStatus := tk.Status()
	if err := tk.ChangeStatus(newStatus, cmd.ChangedBy, uc.policy); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if oldStatus != newStatus {
		activity, err := ticket.NewStatusChangeActivity(tk.ID(), oldStatus, newStatus, cmd.ChangedBy, cmd.ChangedByName)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}

		err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
			if err := uc.ticketRepo.Update(txCtx, tk); err != nil {
				return err
			}
			return uc.activityRepo.Save(txCtx, activity)
		})
		if err != nil {
			uc.logger.Errorw("failed to persist status change", "error", err, "ticket_id", tk.ID())
			return nil, err
		}

		if err := uc.publisher.PublishAll(tk.GetEvents()); err != nil {
			uc.logger.Warnw("failed to publish status change events", "error", err, "ticket_id", tk.ID())
		}
		tk.ClearEvents()
	}

	uc.logger.Infow("ticket status changed",
		"ticket_id", tk.ID(), "old_status", oldStatus.String(), "new_status", newStatus.String())

	return &ChangeStatusResult{
		TicketID:   tk.ID(),
		OldStatus:  oldStatus.String(),
		NewStatus:  tk.Status().String(),
		ResolvedAt: tk.ResolvedAt(),
		VerifiedAt: tk.VerifiedAt(),
		UpdatedAt:  tk.UpdatedAt(),
	}, nil
}

func (uc *ChangeStatusUseCase) validateCommand(cmd ChangeStatusCommand) error {
	if cmd.TicketID == 0 {
		return errors.NewValidationError("ticket ID is required")
	}
	if cmd.ChangedBy == 0 {
		return errors.NewValidationError("changed by user ID is required")
	}
	if !vo.TicketStatus(cmd.NewStatus).IsValid() {
		return errors.NewValidationError("invalid status: " + cmd.NewStatus)
	}
	if !cmd.Role.IsValid() {
		return errors.NewValidationError("invalid role")
	}
	return nil
}
