package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Conte777/MovieFlow/config"
)

// NewPostgresDB creates a new PostgreSQL database connection and applies migrations
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := Open(cfg.GetDSN())
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(db, cfg.Name); err != nil {
		return nil, err
	}

	return db, nil
}

// Open connects to PostgreSQL without running migrations
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
