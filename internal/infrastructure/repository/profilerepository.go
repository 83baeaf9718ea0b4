package repository

import (
	"context"

	"gorm.io/gorm"

	"fieldops/internal/domain/user"
	"fieldops/internal/infrastructure/persistence/mappers"
	"fieldops/internal/infrastructure/persistence/models"
	"fieldops/internal/shared/db"
	"fieldops/internal/shared/errors"
)

type ProfileRepository struct {
	db     *gorm.DB
	mapper *mappers.ProfileMapper
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{
		db:     database,
		mapper: mappers.NewProfileMapper(),
	}
}

func (r *ProfileRepository) Save(ctx context.Context, p *user.Profile) error {
	model := r.mapper.ToModel(p)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return errors.NewPersistenceError("failed to save profile", err)
	}

	return p.SetID(model.ID)
}

func (r *ProfileRepository) Update(ctx context.Context, p *user.Profile) error {
	model := r.mapper.ToModel(p)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Save(model).Error; err != nil {
		return errors.NewPersistenceError("failed to update profile", err)
	}

	return nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, id uint) (*user.Profile, error) {
	var model models.ProfileModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.NewPersistenceError("failed to find profile", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) (*user.Profile, error) {
	var model models.ProfileModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("email = ?", email).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.NewPersistenceError("failed to find profile by email", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *ProfileRepository) FindByIDs(ctx context.Context, ids []uint) ([]*user.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []models.ProfileModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, errors.NewPersistenceError("failed to find profiles", err)
	}

	return r.toDomainSlice(rows)
}

func (r *ProfileRepository) ListAssignable(ctx context.Context) ([]*user.Profile, error) {
	var rows []models.ProfileModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Where("active = ?", true).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.NewPersistenceError("failed to list assignable profiles", err)
	}

	return r.toDomainSlice(rows)
}

func (r *ProfileRepository) toDomainSlice(rows []models.ProfileModel) ([]*user.Profile, error) {
	profiles := make([]*user.Profile, 0, len(rows))
	for i := range rows {
		p, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}
