package usecases

import (
	"context"

	"fieldops/internal/application/ticket/dto"
	"fieldops/internal/domain/ticket"
	"fieldops/internal/shared/authorization"
	"fieldops/internal/shared/errors"
	"fieldops/internal/shared/logger"
)

type GetTicketActivitiesQuery struct {
	TicketID uint
	UserID   uint
	Role     authorization.UserRole
}

// GetTicketActivitiesUseCase returns a ticket's audit trail, most recent
// first. A deleted or unknown ticket yields an empty trail rather than an
// error: the cascade removes activities with their parent, so "nothing
// there" is the truthful answer.
type GetTicketActivitiesUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	logger       logger.Interface
}

func NewGetTicketActivitiesUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	logger logger.Interface,
) *GetTicketActivitiesUseCase {
	return &GetTicketActivitiesUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (uc *GetTicketActivitiesUseCase) Execute(ctx context.Context, query GetTicketActivitiesQuery) ([]dto.ActivityDTO, error) {
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
	if tk != nil && !tk.CanBeViewedBy(query.UserID, query.Role) {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	activities, err := uc.activityRepo.FindByTicketID(ctx, query.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load activities", "error", err, "ticket_id", query.TicketID)
		return nil, err
	}

	out := make([]dto.ActivityDTO, 0, len(activities))
	for _, a := range ticket.SortedActivities(activities) {
		out = append(out, dto.ToActivityDTO(a))
	}
	return out, nil
}
