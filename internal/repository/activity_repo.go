package repository

import (
	"context"
	"time"

	"github.com/mahmoud-sadrian/Bsc-project/internal/model"
	"gorm.io/gorm"
)

// ActivityLogRepository handles the append-only device audit trail
type ActivityLogRepository struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Append records an action for a device at the given time
func (r *ActivityLogRepository) Append(ctx context.Context, deviceID uint, action string, at time.Time) error {
	return r.db.WithContext(ctx).Create(&model.ActivityLog{
		DeviceID:  deviceID,
		Action:    action,
		Timestamp: at,
	}).Error
}

// Recent returns up to limit entries for a device, newest first
func (r *ActivityLogRepository) Recent(ctx context.Context, deviceID uint, limit int) ([]model.ActivityLog, error) {
	logs := []model.ActivityLog{}
	err := r.db.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Order("timestamp DESC").
		Order("id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
