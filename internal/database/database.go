package database

import (
	"fmt"
	"log"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/mahmoud-sadrian/Bsc-project/internal/config"
	"github.com/mahmoud-sadrian/Bsc-project/internal/model"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every table the API owns, in dependency order
var Models = []interface{}{
	&model.User{},
	&model.Device{},
	&model.Schedule{},
	&model.ActivityLog{},
}

// Dialector picks the gorm driver for cfg.Driver
func Dialector(cfg config.DBConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres, "":
		return postgres.Open(cfg.DSN()), nil
	case config.DriverMySQL:
		return mysql.Open(cfg.DSN()), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

// Open connects to the configured store and sizes the pool.
// The returned handle is shared by every request; gorm/database/sql make it safe for that.
func Open(cfg config.DBConfig, gormLogger logger.Interface) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		// SQLite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return db, nil
}

// oneActiveTimerIndex matches migrations/sql/000002_single_active_timer.up.sql
const oneActiveTimerIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_schedules_one_active_timer
	ON schedules (device_id) WHERE active AND type = 'TIMER'`

// AutoMigrate creates or updates the four API tables from the gorm models
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	// MySQL has no partial indexes; there the device row lock in SetTimer is the only guard
	if name := db.Dialector.Name(); name == "sqlite" || name == "postgres" {
		if err := db.Exec(oneActiveTimerIndex).Error; err != nil {
			return fmt.Errorf("failed to create timer index: %w", err)
		}
	}
	log.Println("📦 GORM AutoMigrate completed")
	return nil
}
