package seeds

import (
	"gorm.io/gorm"

	"fieldops/internal/infrastructure/persistence/models"
)

// SeedProfiles seeds the demo user accounts. Identity itself lives in the
// external provider; these rows only carry the profile fields the app reads.
func SeedProfiles(db *gorm.DB) error {
	profiles := []models.ProfileModel{
		{
			ID:        1,
			Email:     "admin@fieldops.test",
			Name:      "Admin User",
			Role:      "admin",
			Phone:     "+1-555-0100",
			Active:    true,
			CreatedAt: seedEpoch,
			UpdatedAt: seedEpoch,
		},
		{
			ID:        2,
			Email:     "supervisor@fieldops.test",
			Name:      "Supervisor User",
			Role:      "supervisor",
			Phone:     "+1-555-0101",
			Active:    true,
			CreatedAt: seedEpoch,
			UpdatedAt: seedEpoch,
		},
		{
			ID:        3,
			Email:     "engineer@fieldops.test",
			Name:      "Field Engineer",
			Role:      "field_engineer",
			Phone:     "+1-555-0102",
			Active:    true,
			CreatedAt: seedEpoch,
			UpdatedAt: seedEpoch,
		},
		{
			ID:        4,
			Email:     "engineer2@fieldops.test",
			Name:      "Second Engineer",
			Role:      "field_engineer",
			Active:    true,
			CreatedAt: seedEpoch,
			UpdatedAt: seedEpoch,
		},
	}

	for i := range profiles {
		var count int64
		if err := db.Model(&models.ProfileModel{}).Where("email = ?", profiles[i].Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&profiles[i]).Error; err != nil {
			return err
		}
	}

	return nil
}
