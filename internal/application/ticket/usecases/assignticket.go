package usecases

import (
	"context"
	"time"

	"fieldops/internal/domain/shared/events"
	"fieldops/internal/domain/ticket"
	"fieldops/internal/domain/user"
	"fieldops/internal/shared/authorization"
	"fieldops/internal/shared/errors"
	"fieldops/internal/shared/logger"
)

// AssignTicketCommand assigns or unassigns a ticket. A nil AssigneeID clears
// the current assignment and reverts the ticket to open.
type AssignTicketCommand struct {
	TicketID       uint
	AssigneeID     *uint
	AssignedBy     uint
	AssignedByName string
	Role           authorization.UserRole
}

type AssignTicketResult struct {
	TicketID   uint
	AssigneeID *uint
	Status     string
	AssignedAt *time.Time
	UpdatedAt  time.Time
}

type AssignTicketUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	profileRepo  user.ProfileRepository
	txManager    TransactionManager
	publisher    events.EventPublisher
	logger       logger.Interface
}

func NewAssignTicketUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	profileRepo user.ProfileRepository,
	txManager TransactionManager,
	publisher events.EventPublisher,
	logger logger.Interface,
) *AssignTicketUseCase {
	return &AssignTicketUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		profileRepo:  profileRepo,
		txManager:    txManager,
		publisher:    publisher,
		logger:       logger,
	}
}

func (uc *AssignTicketUseCase) Execute(ctx context.Context, cmd AssignTicketCommand) (*AssignTicketResult, error) {
	uc.logger.Infow("executing assign ticket use case",
		"ticket_id", cmd.TicketID, "assignee_id", cmd.AssigneeID, "assigned_by", cmd.AssignedBy)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.AssignedBy == 0 {
		return nil, errors.NewValidationError("assigned by user ID is required")
	}
	if !cmd.Role.CanAssignTickets() {
		return nil, errors.NewForbiddenError("only supervisors and admins can assign tickets")
	}

	tk, err := uc.ticketRepo.FindByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	if tk == nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	var assigneeName string
	if cmd.AssigneeID != nil {
		profile, err := uc.profileRepo.FindByID(ctx, *cmd.AssigneeID)
		if err != nil {
			return nil, err
		}
		if profile == nil {
			return nil, errors.NewValidationError("assignee does not exist")
		}
		if !profile.CanBeAssigned() {
			return nil, errors.NewValidationError("assignee is not active")
		}
		assigneeName = profile.Name()

		if err := tk.AssignTo(*cmd.AssigneeID, cmd.AssignedBy); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	} else {
		if err := tk.Unassign(cmd.AssignedBy); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	activity, err := ticket.NewAssignmentActivity(tk.ID(), cmd.AssigneeID, assigneeName, cmd.AssignedBy, cmd.AssignedByName)
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
		uc.logger.Errorw("failed to persist assignment", "error", err, "ticket_id", tk.ID())
		return nil, err
	}

	if err := uc.publisher.PublishAll(tk.GetEvents()); err != nil {
		uc.logger.Warnw("failed to publish assignment events", "error", err, "ticket_id", tk.ID())
	}
	tk.ClearEvents()

	return &AssignTicketResult{
		TicketID:   tk.ID(),
		AssigneeID: tk.AssigneeID(),
		Status:     tk.Status().String(),
		AssignedAt: tk.AssignedAt(),
		UpdatedAt:  tk.UpdatedAt(),
	}, nil
}
