package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the wall-clock format used in API payloads
const TimestampLayout = "2006-01-02 15:04:05"

// ========== Auth DTOs ==========

// SignupRequest mirrors the signup body. Pointer and untyped fields let the service
// tell "absent" from "empty" and accept loosely typed clients.
type SignupRequest struct {
	Username      *string     `json:"username"`
	Password      *string     `json:"password"`
	AgreedToTerms interface{} `json:"agreed_to_terms"`
	FirstName     string      `json:"first_name"`
	LastName      string      `json:"last_name"`
}

type SignupResponse struct {
	Message  string `json:"message"`
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
}

type SigninRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// ========== Device DTOs ==========

type ControlRequest struct {
	Status *string `json:"status"`
}

type ControlResponse struct {
	Message  string       `json:"message"`
	DeviceID uint         `json:"deviceId"`
	Status   DeviceStatus `json:"status"`
}

type TimerRequest struct {
	DurationMinutes interface{} `json:"duration_minutes"`
}

type TimerResponse struct {
	Message  string       `json:"message"`
	DeviceID uint         `json:"deviceId"`
	Duration int          `json:"duration"`
	Status   DeviceStatus `json:"status"`
}

type DeviceListResponse struct {
	Devices []Device `json:"devices"`
	Count   int      `json:"count"`
}

type DeviceLogsResponse struct {
	DeviceID uint          `json:"deviceId"`
	Logs     []ActivityLog `json:"logs"`
	Count    int           `json:"count"`
}

type DeviceStatusResponse struct {
	DeviceID  uint         `json:"deviceId"`
	Status    DeviceStatus `json:"status"`
	Timestamp string       `json:"timestamp"`
}

// ========== Info ==========

type InfoResponse struct {
	Message   string                       `json:"message"`
	Version   string                       `json:"version"`
	Timestamp string                       `json:"timestamp"`
	Endpoints map[string]map[string]string `json:"endpoints"`
}

// ========== WebSocket Event DTOs ==========

type WSEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// WebSocket event types
const (
	WSEventDeviceStatus = "device_status"
)

type DeviceStatusEvent struct {
	DeviceID  uint         `json:"device_id"`
	Status    DeviceStatus `json:"status"`
	Timestamp string       `json:"timestamp"`
}

// NewDeviceStatusEvent builds the push payload for a status change at t
func NewDeviceStatusEvent(deviceID uint, status DeviceStatus, t time.Time) *WSEvent {
	return &WSEvent{
		Type: WSEventDeviceStatus,
		Payload: DeviceStatusEvent{
			DeviceID:  deviceID,
			Status:    status,
			Timestamp: t.Format(TimestampLayout),
		},
	}
}

// ========== Common ==========

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ========== Loose JSON helpers ==========

// Truthy reports whether a decoded JSON value counts as "yes":
// true, non-zero numbers, strings other than "" and "0", non-empty arrays and objects.
func Truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case string:
		return t != "" && t != "0"
	case []interface{}:
		return len(t) > 0
	case map[string]interface{}:
		return len(t) > 0
	default:
		return true
	}
}

// WholeMinutes converts a JSON number or numeric string into a positive whole
// number of minutes. Fractions are truncated; anything below one minute is rejected.
func WholeMinutes(v interface{}) (int, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 || f > math.MaxInt32 {
		return 0, false
	}
	minutes := int(math.Trunc(f))
	if minutes < 1 {
		return 0, false
	}
	return minutes, true
}
