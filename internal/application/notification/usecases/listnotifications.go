package usecases

import (
	"context"
	"time"

	"fieldops/internal/domain/notification"
	"fieldops/internal/shared/constants"
	"fieldops/internal/shared/errors"
	"fieldops/internal/shared/logger"
)

type NotificationDTO struct {
	ID        uint       `json:"id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	TicketID  *uint      `json:"ticket_id"`
	Read      bool       `json:"read"`
	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `json:"created_at"`
}

type ListNotificationsQuery struct {
	UserID   uint
	Page     int
	PageSize int
}

type ListNotificationsResult struct {
	Notifications []NotificationDTO
	Total         int64
	UnreadCount   int64
	Page          int
	PageSize      int
}

type ListNotificationsUseCase struct {
	repo   notification.NotificationRepository
	logger logger.Interface
}

func NewListNotificationsUseCase(repo notification.NotificationRepository, log logger.Interface) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{repo: repo, logger: log}
}

func (uc *ListNotificationsUseCase) Execute(ctx context.Context, query ListNotificationsQuery) (*ListNotificationsResult, error) {
	if query.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}
	if query.Page < 1 {
		query.Page = constants.DefaultPage
	}
	if query.PageSize < 1 || query.PageSize > constants.MaxPageSize {
		query.PageSize = constants.DefaultPageSize
	}

	notifications, total, err := uc.repo.FindByUserID(ctx, query.UserID, query.Page, query.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list notifications", "error", err, "user_id", query.UserID)
		return nil, err
	}

	unread, err := uc.repo.CountUnread(ctx, query.UserID)
	if err != nil {
		uc.logger.Warnw("failed to count unread notifications", "error", err, "user_id", query.UserID)
	}

	dtos := make([]NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		dtos = append(dtos, NotificationDTO{
			ID:        n.ID(),
			Type:      n.Type().String(),
			Title:     n.Title(),
			Content:   n.Content(),
			TicketID:  n.TicketID(),
			Read:      !n.IsUnread(),
			ReadAt:    n.ReadAt(),
			CreatedAt: n.CreatedAt(),
		})
	}

	return &ListNotificationsResult{
		Notifications: dtos,
		Total:         total,
		UnreadCount:   unread,
		Page:          query.Page,
		PageSize:      query.PageSize,
	}, nil
}
