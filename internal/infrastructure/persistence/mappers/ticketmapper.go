package mappers

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"fieldops/internal/domain/ticket"
	vo "fieldops/internal/domain/ticket/valueobjects"
	"fieldops/internal/infrastructure/persistence/models"
)

// TicketMapper converts between ticket domain entities and persistence
// models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) (*models.TicketModel, error)
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	ActivityToModel(a *ticket.Activity) (*models.ActivityModel, error)
	ActivityToDomain(model *models.ActivityModel) (*ticket.Activity, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) (*models.TicketModel, error) {
	mediaJSON, err := json.Marshal(t.MediaURLs())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal media URLs (id=%d): %w", t.ID(), err)
	}

	model := &models.TicketModel{
		ID:             t.ID(),
		Number:         t.Number(),
		Title:          t.Title(),
		Description:    t.Description(),
		Type:           t.Type().String(),
		Priority:       t.Priority().String(),
		Status:         t.Status().String(),
		Location:       t.Location(),
		Latitude:       t.Latitude(),
		Longitude:      t.Longitude(),
		CreatorID:      t.CreatorID(),
		AssigneeID:     t.AssigneeID(),
		VerifierID:     t.VerifierID(),
		EquipmentID:    t.EquipmentID(),
		EquipmentName:  t.EquipmentName(),
		MediaURLs:      datatypes.JSON(mediaJSON),
		EstimatedHours: t.EstimatedHours(),
		ActualHours:    t.ActualHours(),
		Version:        t.Version(),
		CreatedAt:      t.CreatedAt().UnixMilli(),
		UpdatedAt:      t.UpdatedAt().UnixMilli(),
	}

	model.DueDate = timeToMillis(t.DueDate())
	model.AssignedAt = timeToMillis(t.AssignedAt())
	model.ResolvedAt = timeToMillis(t.ResolvedAt())
	model.VerifiedAt = timeToMillis(t.VerifiedAt())

	return model, nil
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	var mediaURLs []string
	if len(model.MediaURLs) > 0 {
		if err := json.Unmarshal(model.MediaURLs, &mediaURLs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal media URLs (id=%d): %w", model.ID, err)
		}
	}

	return ticket.ReconstructTicket(ticket.TicketAttributes{
		ID:             model.ID,
		Number:         model.Number,
		Title:          model.Title,
		Description:    model.Description,
		TicketType:     vo.TicketType(model.Type),
		Priority:       vo.Priority(model.Priority),
		Status:         vo.TicketStatus(model.Status),
		Location:       model.Location,
		Latitude:       model.Latitude,
		Longitude:      model.Longitude,
		CreatorID:      model.CreatorID,
		AssigneeID:     model.AssigneeID,
		VerifierID:     model.VerifierID,
		EquipmentID:    model.EquipmentID,
		EquipmentName:  model.EquipmentName,
		MediaURLs:      mediaURLs,
		DueDate:        millisToTime(model.DueDate),
		EstimatedHours: model.EstimatedHours,
		ActualHours:    model.ActualHours,
		AssignedAt:     millisToTime(model.AssignedAt),
		ResolvedAt:     millisToTime(model.ResolvedAt),
		VerifiedAt:     millisToTime(model.VerifiedAt),
		Version:        model.Version,
		CreatedAt:      time.UnixMilli(model.CreatedAt).UTC(),
		UpdatedAt:      time.UnixMilli(model.UpdatedAt).UTC(),
	})
}

func (m *TicketMapperImpl) ActivityToModel(a *ticket.Activity) (*models.ActivityModel, error) {
	model := &models.ActivityModel{
		ID:         a.ID(),
		TicketID:   a.TicketID(),
		Type:       a.Type().String(),
		Content:    a.Content(),
		AuthorID:   a.AuthorID(),
		AuthorName: a.AuthorName(),
		CreatedAt:  a.CreatedAt().UnixMilli(),
	}

	if meta := a.Metadata(); len(meta) > 0 {
		metaJSON, err := json.Marshal(meta)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal activity metadata (id=%d): %w", a.ID(), err)
		}
		model.Metadata = datatypes.JSON(metaJSON)
	}

	return model, nil
}

func (m *TicketMapperImpl) ActivityToDomain(model *models.ActivityModel) (*ticket.Activity, error) {
	var metadata map[string]string
	if len(model.Metadata) > 0 {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal activity metadata (id=%d): %w", model.ID, err)
		}
	}

	return ticket.ReconstructActivity(ticket.ActivityAttributes{
		ID:           model.ID,
		TicketID:     model.TicketID,
		ActivityType: vo.ActivityType(model.Type),
		Content:      model.Content,
		AuthorID:     model.AuthorID,
		AuthorName:   model.AuthorName,
		Metadata:     metadata,
		CreatedAt:    time.UnixMilli(model.CreatedAt).UTC(),
	})
}

func timeToMillis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func millisToTime(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms).UTC()
	return &t
}
