package migration

import (
	"fmt"

	"gorm.io/gorm"

	"coursekit/internal/shared/logger"
)

// GormAutoMigrateStrategy lets GORM derive the schema from the model structs.
// Development only; versioned scripts own the schema everywhere else.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.automigrate"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	s.logger.Infow("starting gorm auto-migration", "models_count", len(models))

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	s.logger.Infow("gorm auto-migration completed")
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}
