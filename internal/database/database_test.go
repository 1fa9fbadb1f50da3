package database

import (
	"testing"

	"github.com/mahmoud-sadrian/Bsc-project/internal/config"
	"github.com/mahmoud-sadrian/Bsc-project/internal/model"
	"gorm.io/gorm/logger"
)

func TestDialector(t *testing.T) {
	for _, driver := range []string{"", config.DriverPostgres, config.DriverMySQL, config.DriverSQLite} {
		d, err := Dialector(config.DBConfig{Driver: driver, Path: ":memory:"})
		if err != nil || d == nil {
			t.Errorf("Dialector(%q) = %v, %v", driver, d, err)
		}
	}
	if _, err := Dialector(config.DBConfig{Driver: "oracle"}); err == nil {
		t.Error("Dialector accepted an unsupported driver")
	}
}

func TestOpenSQLiteAndMigrate(t *testing.T) {
	db, err := Open(config.DBConfig{Driver: config.DriverSQLite, Path: ":memory:"}, logger.Default.LogMode(logger.Silent))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	for _, table := range []string{"users", "devices", "schedules", "activity_logs"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("table %s missing", table)
		}
	}
}

func TestAutoMigrateAllowsOneActiveTimerPerDevice(t *testing.T) {
	db, err := Open(config.DBConfig{Driver: config.DriverSQLite, Path: ":memory:"}, logger.Default.LogMode(logger.Silent))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	timer := func(deviceID uint) error {
		return db.Create(&model.Schedule{DeviceID: deviceID, Type: model.ScheduleTypeTimer, DurationMinutes: 5, Active: true}).Error
	}

	if err := timer(1); err != nil {
		t.Fatalf("first active timer: %v", err)
	}
	if err := timer(1); err == nil {
		t.Error("second active timer on the same device was accepted")
	}
	if err := timer(2); err != nil {
		t.Errorf("active timer on another device rejected: %v", err)
	}

	if err := db.Model(&model.Schedule{}).Where("device_id = ?", 1).Update("active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if err := timer(1); err != nil {
		t.Errorf("timer after deactivation rejected: %v", err)
	}
}
