package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mahmoud-sadrian/Bsc-project/internal/config"
	"github.com/mahmoud-sadrian/Bsc-project/internal/database"
	"github.com/mahmoud-sadrian/Bsc-project/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestLockDeviceRowSQL(t *testing.T) {
	// DryRun builds statements without touching a server
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=smartify dbname=smartify24 sslmode=disable"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open dry-run postgres: %v", err)
	}

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var device model.Device
		return lockDeviceRow(tx, 7, &device)
	})

	if !strings.Contains(sql, `FROM "devices"`) || !strings.HasSuffix(sql, "FOR UPDATE") {
		t.Errorf("lock query = %q, want a SELECT on devices ending in FOR UPDATE", sql)
	}
}

func TestLockForUpdateInTransaction(t *testing.T) {
	db, err := database.Open(config.DBConfig{Driver: config.DriverSQLite, Path: ":memory:"}, logger.Default.LogMode(logger.Silent))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	ctx := context.Background()
	repo := NewDeviceRepository(db)

	lamp := &model.Device{UserID: 1, Name: "Lamp", Status: model.DeviceStatusOff}
	if err := repo.Create(ctx, lamp); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return repo.WithTx(tx).LockForUpdate(ctx, lamp.ID)
	})
	if err != nil {
		t.Errorf("LockForUpdate(existing) = %v", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return repo.WithTx(tx).LockForUpdate(ctx, lamp.ID+100)
	})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("LockForUpdate(missing) = %v, want ErrRecordNotFound", err)
	}
}
