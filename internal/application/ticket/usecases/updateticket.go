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

// UpdateTicketCommand carries a sparse field update. Nil pointers leave the
// field untouched; ClearAssignee explicitly unassigns.
type UpdateTicketCommand struct {
	TicketID       uint
	Title          *string
	Description    *string
	Type           *string
	Priority       *string
	Status         *string
	Location       *string
	Latitude       *float64
	Longitude      *float64
	EquipmentID    *string
	EquipmentName  *string
	DueDate        *time.Time
	EstimatedHours *float64
	ActualHours    *float64
	AssigneeID     *uint
	ClearAssignee  bool
	UpdatedBy      uint
	UpdatedByName  string
	Role           authorization.UserRole
}

type UpdateTicketResult struct {
	TicketID  uint
	Status    string
	UpdatedAt time.Time
}

type UpdateTicketUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	txManager    TransactionManager
	policy       vo.TransitionPolicy
	publisher    events.EventPublisher
	logger       logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	txManager TransactionManager,
	policy vo.TransitionPolicy,
	publisher events.EventPublisher,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		txManager:    txManager,
		policy:       policy,
		publisher:    publisher,
		logger:       logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error) {
	uc.logger.Infow("executing update ticket use case", "ticket_id", cmd.TicketID, "updated_by", cmd.UpdatedBy)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.UpdatedBy == 0 {
		return nil, errors.NewValidationError("updated by user ID is required")
	}

	tk, err := uc.ticketRepo.FindByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	if tk == nil || !tk.CanBeViewedBy(cmd.UpdatedBy, cmd.Role) {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	update, err := uc.buildUpdate(cmd)
	if err != nil {
		return nil, err
	}

	oldStatus := tk.Status()
	oldAssignee := tk.AssigneeID()

	if err := tk.ApplyUpdate(update, cmd.UpdatedBy, uc.policy); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	activities, err := uc.auditActivities(tk, oldStatus, oldAssignee, cmd)
	if err != nil {
		return nil, err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Update(txCtx, tk); err != nil {
			return err
		}
		for _, a := range activities {
			if err := uc.activityRepo.Save(txCtx, a); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to persist ticket update", "error", err, "ticket_id", tk.ID())
		return nil, err
	}

	evt := ticket.NewTicketUpdatedEvent(tk.ID(), cmd.UpdatedBy, tk.UpdatedAt())
	if err := uc.publisher.Publish(evt); err != nil {
		uc.logger.Warnw("failed to publish ticket updated event", "error", err, "ticket_id", tk.ID())
	}

	return &UpdateTicketResult{
		TicketID:  tk.ID(),
		Status:    tk.Status().String(),
		UpdatedAt: tk.UpdatedAt(),
	}, nil
}

func (uc *UpdateTicketUseCase) buildUpdate(cmd UpdateTicketCommand) (ticket.TicketUpdate, error) {
	update := ticket.TicketUpdate{
		Title:          cmd.Title,
		Description:    cmd.Description,
		Location:       cmd.Location,
		Latitude:       cmd.Latitude,
		Longitude:      cmd.Longitude,
		EquipmentID:    cmd.EquipmentID,
		EquipmentName:  cmd.EquipmentName,
		DueDate:        cmd.DueDate,
		EstimatedHours: cmd.EstimatedHours,
		ActualHours:    cmd.ActualHours,
		AssigneeID:     cmd.AssigneeID,
		ClearAssignee:  cmd.ClearAssignee,
	}

	if cmd.Type != nil {
		t, err := vo.NewTicketType(*cmd.Type)
		if err != nil {
			return ticket.TicketUpdate{}, errors.NewValidationError(err.Error())
		}
		update.TicketType = &t
	}
	if cmd.Priority != nil {
		p, err := vo.NewPriority(*cmd.Priority)
		if err != nil {
			return ticket.TicketUpdate{}, errors.NewValidationError(err.Error())
		}
		update.Priority = &p
	}
	if cmd.Status != nil {
		s, err := vo.NewTicketStatus(*cmd.Status)
		if err != nil {
			return ticket.TicketUpdate{}, errors.NewValidationError(err.Error())
		}
		update.Status = &s
	}

	return update, nil
}

// auditActivities records status and assignment changes that rode in on a
// general update, so the trail stays complete regardless of which endpoint
// performed the mutation.
func (uc *UpdateTicketUseCase) auditActivities(
	tk *ticket.Ticket,
	oldStatus vo.TicketStatus,
	oldAssignee *uint,
	cmd UpdateTicketCommand,
) ([]*ticket.Activity, error) {
	var activities []*ticket.Activity

	if tk.Status() != oldStatus {
		a, err := ticket.NewStatusChangeActivity(tk.ID(), oldStatus, tk.Status(), cmd.UpdatedBy, cmd.UpdatedByName)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		activities = append(activities, a)
	}

	if assigneeChanged(oldAssignee, tk.AssigneeID()) {
		a, err := ticket.NewAssignmentActivity(tk.ID(), tk.AssigneeID(), "", cmd.UpdatedBy, cmd.UpdatedByName)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		activities = append(activities, a)
	}

	return activities, nil
}

func assigneeChanged(prev, curr *uint) bool {
	if prev == nil && curr == nil {
		return false
	}
	if prev == nil || curr == nil {
		return true
	}
	return *prev != *curr
}
