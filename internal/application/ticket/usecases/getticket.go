package usecases

import (
	"context"

	"fieldops/internal/application/ticket/dto"
	"fieldops/internal/domain/ticket"
	"fieldops/internal/shared/authorization"
	"fieldops/internal/shared/errors"
	"fieldops/internal/shared/logger"
)

type GetTicketQuery struct {
	TicketID uint
	UserID   uint
	Role     authorization.UserRole
}

type GetTicketUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	logger       logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	if query.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if query.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	tk, err := uc.ticketRepo.FindByID(ctx, query.TicketID)
	if err != nil {
		return nil, err
	}
	if tk == nil || !tk.CanBeViewedBy(query.UserID, query.Role) {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	activities, err := uc.activityRepo.FindByTicketID(ctx, tk.ID())
	if err != nil {
		uc.logger.Warnw("failed to load activities, returning ticket without trail",
			"error", err, "ticket_id", tk.ID())
		activities = nil
	}

	return dto.ToTicketDTO(tk, activities), nil
}
