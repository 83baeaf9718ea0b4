package mappers

import (
	"time"

	"fieldops/internal/domain/notification"
	nvo "fieldops/internal/domain/notification/valueobjects"
	"fieldops/internal/domain/user"
	"fieldops/internal/infrastructure/persistence/models"
	"fieldops/internal/shared/authorization"
)

type ProfileMapper struct{}

func NewProfileMapper() *ProfileMapper {
	return &ProfileMapper{}
}

func (m *ProfileMapper) ToModel(p *user.Profile) *models.ProfileModel {
	return &models.ProfileModel{
		ID:        p.ID(),
		Email:     p.Email(),
		Name:      p.Name(),
		Role:      p.Role().String(),
		Phone:     p.Phone(),
		AvatarURL: p.AvatarURL(),
		Active:    p.IsActive(),
		CreatedAt: p.CreatedAt().UnixMilli(),
		UpdatedAt: p.UpdatedAt().UnixMilli(),
	}
}

func (m *ProfileMapper) ToDomain(model *models.ProfileModel) (*user.Profile, error) {
	return user.ReconstructProfile(user.ProfileAttributes{
		ID:        model.ID,
		Email:     model.Email,
		Name:      model.Name,
		Role:      authorization.UserRole(model.Role),
		Phone:     model.Phone,
		AvatarURL: model.AvatarURL,
		Active:    model.Active,
		CreatedAt: time.UnixMilli(model.CreatedAt).UTC(),
		UpdatedAt: time.UnixMilli(model.UpdatedAt).UTC(),
	})
}

type NotificationMapper struct{}

func NewNotificationMapper() *NotificationMapper {
	return &NotificationMapper{}
}

func (m *NotificationMapper) ToModel(n *notification.Notification) *models.NotificationModel {
	model := &models.NotificationModel{
		ID:        n.ID(),
		UserID:    n.UserID(),
		Type:      n.Type().String(),
		Title:     n.Title(),
		Content:   n.Content(),
		TicketID:  n.TicketID(),
		Read:      !n.IsUnread(),
		CreatedAt: n.CreatedAt().UnixMilli(),
	}
	model.ReadAt = timeToMillis(n.ReadAt())
	return model
}

func (m *NotificationMapper) ToDomain(model *models.NotificationModel) (*notification.Notification, error) {
	readStatus := nvo.ReadStatusUnread
	if model.Read {
		readStatus = nvo.ReadStatusRead
	}

	return notification.ReconstructNotification(notification.NotificationAttributes{
		ID:               model.ID,
		UserID:           model.UserID,
		NotificationType: nvo.NotificationType(model.Type),
		Title:            model.Title,
		Content:          model.Content,
		TicketID:         model.TicketID,
		ReadStatus:       readStatus,
		ReadAt:           millisToTime(model.ReadAt),
		CreatedAt:        time.UnixMilli(model.CreatedAt).UTC(),
	})
}
