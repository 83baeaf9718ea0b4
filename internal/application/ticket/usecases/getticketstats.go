package usecases

import (
	"context"

	"fieldops/internal/domain/ticket"
	"fieldops/internal/shared/authorization"
	"fieldops/internal/shared/errors"
	"fieldops/internal/shared/logger"
)

type GetTicketStatsQuery struct {
	UserID uint
	Role   authorization.UserRole
}

type GetTicketStatsResult struct {
	Open       int64 `json:"open"`
	InProgress int64 `json:"in_progress"`
	Resolved   int64 `json:"resolved"`
	Verified   int64 `json:"verified"`
	Closed     int64 `json:"closed"`
	Total      int64 `json:"total"`
}

type GetTicketStatsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewGetTicketStatsUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *GetTicketStatsUseCase {
	return &GetTicketStatsUseCase{ticketRepo: ticketRepo, logger: logger}
}

func (uc *GetTicketStatsUseCase) Execute(ctx context.Context, query GetTicketStatsQuery) (*GetTicketStatsResult, error) {
	if query.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	var visibleTo *uint
	if !query.Role.CanViewAllTickets() {
		userID := query.UserID
		visibleTo = &userID
	}

	counts, err := uc.ticketRepo.CountByStatus(ctx, visibleTo)
	if err != nil {
		uc.logger.Errorw("failed to count tickets by status", "error", err, "user_id", query.UserID)
		return nil, err
	}

	result := &GetTicketStatsResult{}
	for status, count := range counts {
		switch {
		case status.IsOpen():
			result.Open = count
		case status.IsInProgress():
			result.InProgress = count
		case status.IsResolved():
			result.Resolved = count
		case status.IsVerified():
			result.Verified = count
		case status.IsClosed():
			result.Closed = count
		}
		result.Total += count
	}

	return result, nil
}
