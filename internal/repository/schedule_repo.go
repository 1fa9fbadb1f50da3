package repository

import (
	"context"

	"github.com/mahmoud-sadrian/Bsc-project/internal/model"
	"gorm.io/gorm"
)

// ScheduleRepository handles database operations for schedules
type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// WithTx returns a copy bound to a running transaction
func (r *ScheduleRepository) WithTx(tx *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: tx}
}

// Create inserts a new schedule
func (r *ScheduleRepository) Create(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

// DeactivateAll switches off every active schedule of the given type for a device
// (used before arming a new timer so only one stays active)
func (r *ScheduleRepository) DeactivateAll(ctx context.Context, deviceID uint, scheduleType model.ScheduleType) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Schedule{}).
		Where("device_id = ? AND type = ? AND active = ?", deviceID, string(scheduleType), true).
		Update("active", false)
	return result.RowsAffected, result.Error
}

// ListActive returns the active schedules of the given type for a device
func (r *ScheduleRepository) ListActive(ctx context.Context, deviceID uint, scheduleType model.ScheduleType) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.db.WithContext(ctx).
		Where("device_id = ? AND type = ? AND active = ?", deviceID, string(scheduleType), true).
		Order("created_at DESC").
		Find(&schedules).Error
	return schedules, err
}
