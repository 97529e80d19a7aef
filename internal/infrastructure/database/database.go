package database

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	sharedConfig "coursekit/internal/shared/config"
	"coursekit/internal/shared/logger"
)

var (
	db   *gorm.DB
	dbMu sync.RWMutex
)

// Init opens the MySQL connection and configures the pool.
func Init(cfg *sharedConfig.DatabaseConfig) error {
	database, err := gorm.Open(mysql.Open(cfg.GetDSN()), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	dbMu.Lock()
	db = database
	dbMu.Unlock()

	logger.Info("database connection established", "database", cfg.Database)

	return nil
}

// Get returns the database handle.
func Get() *gorm.DB {
	dbMu.RLock()
	defer dbMu.RUnlock()
	return db
}

// Close closes the underlying connection pool.
func Close() error {
	dbMu.RLock()
	current := db
	dbMu.RUnlock()

	if current == nil {
		return nil
	}
	sqlDB, err := current.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
