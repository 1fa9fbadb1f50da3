package model

import (
	"encoding/json"
	"time"
)

// ScheduleType distinguishes one-shot timers from other stored schedules
type ScheduleType string

const (
	ScheduleTypeTimer ScheduleType = "TIMER"
)

// Schedule records a timer intent for a device. Nothing in this service executes it;
// at most one TIMER row per device is active at a time.
type Schedule struct {
	ID              uint         `json:"id" gorm:"primaryKey"`
	DeviceID        uint         `json:"device_id" gorm:"not null;index:idx_schedules_device_type"`
	Type            ScheduleType `json:"type" gorm:"size:20;not null;index:idx_schedules_device_type"`
	DurationMinutes int          `json:"duration_minutes" gorm:"not null"`
	Active          bool         `json:"active" gorm:"not null;default:true"`
	CreatedAt       time.Time    `json:"created_at"`
}

func (Schedule) TableName() string { return "schedules" }

// ActivityLog is an append-only audit entry for a device
type ActivityLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	DeviceID  uint      `json:"device_id" gorm:"not null;index"`
	Action    string    `json:"action" gorm:"size:255;not null"`
	Timestamp time.Time `json:"timestamp" gorm:"not null;index"`
}

func (ActivityLog) TableName() string { return "activity_logs" }

func (l ActivityLog) MarshalJSON() ([]byte, error) {
	type activityLog ActivityLog
	return json.Marshal(struct {
		activityLog
		Timestamp string `json:"timestamp"`
	}{activityLog(l), l.Timestamp.Format(TimestampLayout)})
}
