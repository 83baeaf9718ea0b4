package migration

import (
	"fmt"

	"gorm.io/gorm"

	"fieldops/internal/infrastructure/persistence/models"
	"fieldops/internal/shared/logger"
)

// AutoMigrateModels lists every model the schema carries, in dependency
// order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.ProfileModel{},
		&models.TicketModel{},
		&models.ActivityModel{},
		&models.NotificationModel{},
	}
}

// Run applies the schema with gorm AutoMigrate. Additive only; destructive
// changes need a manual migration.
func Run(db *gorm.DB, log logger.Interface) error {
	log.Info("running database migrations")

	if err := db.AutoMigrate(AutoMigrateModels()...); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}

	log.Infow("database migrations complete", "models", len(AutoMigrateModels()))
	return nil
}
