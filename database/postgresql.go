package database

import (
	"PatientDesk/config"
	"PatientDesk/models"
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the PostgreSQL connection, configures the pool and verifies it.
// Migrations are not run here; see Migrate.
func InitDB(ctx context.Context, cfg *config.AppConfig) (*gorm.DB, error) {
	// Configure logging level based on environment
	logMode := logger.Silent
	if cfg.IsDev() {
		logMode = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DBURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: false,
		PrepareStmt:                              true,
		Logger:                                   logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database connection")
	}

	if err := configureConnectionPool(db, cfg); err != nil {
		return nil, err
	}

	if err := Ping(ctx, db); err != nil {
		return nil, err
	}

	log.Info().Msg("Database initialized successfully.")
	return db, nil
}

// configureConnectionPool sets up the connection pool settings for the database.
func configureConnectionPool(db *gorm.DB, cfg *config.AppConfig) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB from GORM")
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	return nil
}

// Ping verifies that the database connection is functional.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB from GORM")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.Wrap(err, "failed to ping database")
	}
	return nil
}

// Migrate creates or updates the patient and appointment tables. Appointment
// carries a foreign key to patient.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Patient{}, &models.Appointment{}); err != nil {
		return errors.Wrap(err, "failed to run migrations")
	}
	return nil
}
