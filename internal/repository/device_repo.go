package repository

import (
	"context"
	"time"

	"github.com/mahmoud-sadrian/Bsc-project/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DeviceRepository handles database operations for Device
type DeviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

// WithTx returns a copy bound to a running transaction
func (r *DeviceRepository) WithTx(tx *gorm.DB) *DeviceRepository {
	return &DeviceRepository{db: tx}
}

// Create inserts a device (provisioning and seeding only)
func (r *DeviceRepository) Create(ctx context.Context, device *model.Device) error {
	if device.LastUpdated.IsZero() {
		device.LastUpdated = time.Now()
	}
	return r.db.WithContext(ctx).Create(device).Error
}

// FindByID finds a device regardless of owner
func (r *DeviceRepository) FindByID(ctx context.Context, id uint) (*model.Device, error) {
	var device model.Device
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&device).Error
	if err != nil {
		return nil, err
	}
	return &device, nil
}

// ListByUser returns every device owned by userID, ordered by name
func (r *DeviceRepository) ListByUser(ctx context.Context, userID uint) ([]model.Device, error) {
	devices := []model.Device{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&devices).Error
	return devices, err
}

// IsOwnedBy reports whether a device with deviceID exists and belongs to userID
func (r *DeviceRepository) IsOwnedBy(ctx context.Context, deviceID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Device{}).
		Where("id = ? AND user_id = ?", deviceID, userID).
		Count(&count).Error
	return count > 0, err
}

// LockForUpdate takes a row lock on the device until the surrounding
// transaction ends. Only meaningful on a repository bound with WithTx.
// SQLite has no row locks and relies on its single writer instead.
func (r *DeviceRepository) LockForUpdate(ctx context.Context, deviceID uint) error {
	var device model.Device
	return lockDeviceRow(r.db.WithContext(ctx), deviceID, &device).Error
}

func lockDeviceRow(db *gorm.DB, deviceID uint, dest *model.Device) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(dest, deviceID)
}

// UpdateStatus sets the power state and last-updated time of a device
func (r *DeviceRepository) UpdateStatus(ctx context.Context, deviceID uint, status model.DeviceStatus, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Device{}).
		Where("id = ?", deviceID).
		Updates(map[string]interface{}{
			"status":       string(status),
			"last_updated": at,
		}).Error
}
