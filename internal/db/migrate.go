package db

import (
	"fmt"

	"github.com/jai-app/jai-backend/internal/app/model"
	"github.com/jai-app/jai-backend/pkg/logger"
)

// Migrate runs schema migrations for all models.
func Migrate() error {
	logger.Info("Running database migrations")

	err := DB.AutoMigrate(
		&model.Company{},
		&model.Attachment{},
		&model.Admin{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Database migrations completed successfully")
	return nil
}
