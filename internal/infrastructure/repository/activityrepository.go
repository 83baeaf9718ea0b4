package repository

import (
	"context"

	"gorm.io/gorm"

	"fieldops/internal/domain/ticket"
	"fieldops/internal/infrastructure/persistence/mappers"
	"fieldops/internal/infrastructure/persistence/models"
	"fieldops/internal/shared/db"
	"fieldops/internal/shared/errors"
)

type ActivityRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewActivityRepository(database *gorm.DB) *ActivityRepository {
	return &ActivityRepository{
		db:     database,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *ActivityRepository) Save(ctx context.Context, a *ticket.Activity) error {
	model, err := r.mapper.ActivityToModel(a)
	if err != nil {
		return errors.NewInternalError("failed to map activity", err.Error())
	}
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return errors.NewPersistenceError("failed to save activity", err)
	}

	return a.SetID(model.ID)
}

func (r *ActivityRepository) FindByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Activity, error) {
	var rows []models.ActivityModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.NewPersistenceError("failed to load activities", err)
	}

	activities := make([]*ticket.Activity, 0, len(rows))
	for i := range rows {
		a, err := r.mapper.ActivityToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}

	return activities, nil
}

func (r *ActivityRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.Where("ticket_id = ?", ticketID).Delete(&models.ActivityModel{}).Error
	if err != nil {
		return errors.NewPersistenceError("failed to delete activities", err)
	}

	return nil
}
