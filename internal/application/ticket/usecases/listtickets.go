package usecases

import (
	"context"

	"fieldops/internal/application/ticket/dto"
	"fieldops/internal/domain/ticket"
	vo "fieldops/internal/domain/ticket/valueobjects"
	"fieldops/internal/shared/authorization"
	"fieldops/internal/shared/constants"
	"fieldops/internal/shared/errors"
	"fieldops/internal/shared/logger"
)

type ListTicketsQuery struct {
	UserID     uint
	Role       authorization.UserRole
	Status     string
	Priority   string
	Type       string
	AssigneeID *uint
	Search     string
	// Overdue restricts the listing to tickets past their due date with
	// work outstanding.
	Overdue  bool
	Page     int
	PageSize int
	// SortBy is one of created, updated or priority; empty means newest
	// created first. Priority sorts critical first.
	SortBy string
}

type ListTicketsResult struct {
	Tickets  []dto.TicketListItemDTO
	Total    int64
	Page     int
	PageSize int
}

type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewListTicketsUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{ticketRepo: ticketRepo, logger: logger}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error) {
	if query.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}
	if !query.Role.IsValid() {
		return nil, errors.NewValidationError("invalid role")
	}

	filter, err := uc.buildFilter(query)
	if err != nil {
		return nil, err
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err, "user_id", query.UserID)
		return nil, err
	}

	items := make([]dto.TicketListItemDTO, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, dto.ToTicketListItemDTO(t))
	}

	return &ListTicketsResult{
		Tickets:  items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (uc *ListTicketsUseCase) buildFilter(query ListTicketsQuery) (ticket.TicketFilter, error) {
	filter := ticket.TicketFilter{
		Search:     query.Search,
		AssigneeID: query.AssigneeID,
		Overdue:    query.Overdue,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}

	switch query.SortBy {
	case "", ticket.SortKeyCreated, ticket.SortKeyUpdated, ticket.SortKeyPriority:
		filter.SortBy = query.SortBy
	default:
		return ticket.TicketFilter{}, errors.NewValidationError("invalid sort key: " + query.SortBy)
	}

	if filter.Page < 1 {
		filter.Page = constants.DefaultPage
	}
	if filter.PageSize < 1 {
		filter.PageSize = constants.DefaultPageSize
	}
	if filter.PageSize > constants.MaxPageSize {
		filter.PageSize = constants.MaxPageSize
	}

	if query.Status != "" {
		s, err := vo.NewTicketStatus(query.Status)
		if err != nil {
			return ticket.TicketFilter{}, errors.NewValidationError(err.Error())
		}
		filter.Status = &s
	}
	if query.Priority != "" {
		p, err := vo.NewPriority(query.Priority)
		if err != nil {
			return ticket.TicketFilter{}, errors.NewValidationError(err.Error())
		}
		filter.Priority = &p
	}
	if query.Type != "" {
		t, err := vo.NewTicketType(query.Type)
		if err != nil {
			return ticket.TicketFilter{}, errors.NewValidationError(err.Error())
		}
		filter.TicketType = &t
	}

	// non-admin callers only see what they created or are assigned to
	if !query.Role.CanViewAllTickets() {
		userID := query.UserID
		filter.VisibleToUserID = &userID
	}

	return filter, nil
}
