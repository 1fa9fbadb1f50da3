package model

import (
	"encoding/json"
	"time"
)

// DeviceStatus is the power state of an appliance
type DeviceStatus string

const (
	DeviceStatusOn  DeviceStatus = "ON"
	DeviceStatusOff DeviceStatus = "OFF"
)

// Valid reports whether s is one of the two accepted power states
func (s DeviceStatus) Valid() bool {
	return s == DeviceStatusOn || s == DeviceStatusOff
}

// Device is a controllable appliance owned by a single user.
// Devices are provisioned out-of-band (see cmd/seeder); the API only mutates status.
type Device struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	UserID      uint         `json:"user_id" gorm:"not null;index"`
	Name        string       `json:"name" gorm:"size:100;not null"`
	Status      DeviceStatus `json:"status" gorm:"size:3;not null;default:'OFF'"`
	LastUpdated time.Time    `json:"last_updated" gorm:"autoUpdateTime:false"`
}

func (Device) TableName() string { return "devices" }

// MarshalJSON renders LastUpdated in TimestampLayout like every other API timestamp
func (d Device) MarshalJSON() ([]byte, error) {
	type device Device
	return json.Marshal(struct {
		device
		LastUpdated string `json:"last_updated"`
	}{device(d), d.LastUpdated.Format(TimestampLayout)})
}
