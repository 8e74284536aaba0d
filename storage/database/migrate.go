package database

import (
	"go.uber.org/zap"

	"staffpulse/internal/model"
	"staffpulse/pkg/logger"
)

// Migrate keeps the schema in sync with the models. Column-level changes
// that AutoMigrate cannot express are applied by hand before deploys.
func Migrate() error {
	logger.Logger.Info("Running database migration")

	err := db.AutoMigrate(
		&model.Organization{},
		&model.Employee{},
		&model.ScheduledCheckin{},
		&model.MoodCheckin{},
	)
	if err != nil {
		logger.Logger.Error("Database migration failed", zap.Error(err))
		return err
	}

	logger.Logger.Info("Database migration complete")
	return nil
}
