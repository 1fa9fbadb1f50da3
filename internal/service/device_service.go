package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mahmoud-sadrian/Bsc-project/internal/apperr"
	"github.com/mahmoud-sadrian/Bsc-project/internal/model"
	"github.com/mahmoud-sadrian/Bsc-project/internal/repository"
	"gorm.io/gorm"
)

const recentLogLimit = 50

const (
	msgDeviceAccess      = "Device not found or access denied"
	msgDeviceNotFound    = "Device not found"
	msgInvalidStatus     = "Valid status (ON or OFF) is required"
	msgInvalidDuration   = "Valid duration in minutes is required"
	msgListDevicesFailed = "Failed to retrieve devices"
	msgControlFailed     = "Failed to update device status"
	msgTimerFailed       = "Failed to set timer"
	msgLogsFailed        = "Failed to retrieve device logs"
	msgStatusFailed      = "Failed to retrieve device status"
	msgOwnershipFailed   = "Failed to verify device ownership"
)

// StatusPublisher is notified after a device's power state changes
type StatusPublisher interface {
	PublishStatus(deviceID uint, status model.DeviceStatus, at time.Time)
}

// DeviceService implements the device actions. Device id 0 never exists, so
// callers pass 0 for an unparseable id and get the normal not-found outcome.
type DeviceService struct {
	db           *gorm.DB
	deviceRepo   *repository.DeviceRepository
	scheduleRepo *repository.ScheduleRepository
	logRepo      *repository.ActivityLogRepository
	publisher    StatusPublisher
	now          func() time.Time
}

func NewDeviceService(
	db *gorm.DB,
	deviceRepo *repository.DeviceRepository,
	scheduleRepo *repository.ScheduleRepository,
	logRepo *repository.ActivityLogRepository,
	publisher StatusPublisher,
) *DeviceService {
	return &DeviceService{
		db:           db,
		deviceRepo:   deviceRepo,
		scheduleRepo: scheduleRepo,
		logRepo:      logRepo,
		publisher:    publisher,
		now:          time.Now,
	}
}

// ListDevices returns the caller's devices ordered by name
func (s *DeviceService) ListDevices(ctx context.Context, userID uint) ([]model.Device, error) {
	devices, err := s.deviceRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Storage(msgListDevicesFailed, err)
	}
	return devices, nil
}

// ControlDevice switches a device the caller owns ON or OFF
func (s *DeviceService) ControlDevice(ctx context.Context, userID, deviceID uint, req model.ControlRequest) (model.DeviceStatus, error) {
	if req.Status == nil || !model.DeviceStatus(*req.Status).Valid() {
		return "", apperr.Validation(msgInvalidStatus)
	}
	status := model.DeviceStatus(*req.Status)

	if err := s.requireOwnership(ctx, deviceID, userID); err != nil {
		return "", err
	}

	now := s.now()
	if err := s.deviceRepo.UpdateStatus(ctx, deviceID, status, now); err != nil {
		return "", apperr.Storage(msgControlFailed, err)
	}

	s.recordActivity(ctx, deviceID, fmt.Sprintf("Manually turned %s", status), now)
	s.publishStatus(deviceID, status, now)

	return status, nil
}

// SetTimer arms a new timer on a device the caller owns and powers it on.
// Deactivating old timers, inserting the new one and switching the device on
// commit together. The device row is locked first so timers on one device
// are armed one at a time.
func (s *DeviceService) SetTimer(ctx context.Context, userID, deviceID uint, req model.TimerRequest) (int, error) {
	minutes, ok := model.WholeMinutes(req.DurationMinutes)
	if !ok {
		return 0, apperr.Validation(msgInvalidDuration)
	}

	if err := s.requireOwnership(ctx, deviceID, userID); err != nil {
		return 0, err
	}

	now := s.now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		devices := s.deviceRepo.WithTx(tx)
		if err := devices.LockForUpdate(ctx, deviceID); err != nil {
			return err
		}
		schedules := s.scheduleRepo.WithTx(tx)
		if _, err := schedules.DeactivateAll(ctx, deviceID, model.ScheduleTypeTimer); err != nil {
			return err
		}
		if err := schedules.Create(ctx, &model.Schedule{
			DeviceID:        deviceID,
			Type:            model.ScheduleTypeTimer,
			DurationMinutes: minutes,
			Active:          true,
			CreatedAt:       now,
		}); err != nil {
			return err
		}
		return devices.UpdateStatus(ctx, deviceID, model.DeviceStatusOn, now)
	})
	if err != nil {
		return 0, apperr.Storage(msgTimerFailed, err)
	}

	s.recordActivity(ctx, deviceID, fmt.Sprintf("Timer set for %d minutes", minutes), now)
	s.publishStatus(deviceID, model.DeviceStatusOn, now)

	return minutes, nil
}

// DeviceLogs returns the most recent activity entries of a device the caller owns
func (s *DeviceService) DeviceLogs(ctx context.Context, userID, deviceID uint) ([]model.ActivityLog, error) {
	if err := s.requireOwnership(ctx, deviceID, userID); err != nil {
		return nil, err
	}

	logs, err := s.logRepo.Recent(ctx, deviceID, recentLogLimit)
	if err != nil {
		return nil, apperr.Storage(msgLogsFailed, err)
	}
	return logs, nil
}

// DeviceStatus reads the power state of any device. It performs no ownership
// check: embedded controllers poll it without credentials.
func (s *DeviceService) DeviceStatus(ctx context.Context, deviceID uint) (model.DeviceStatus, error) {
	device, err := s.deviceRepo.FindByID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.NotFound(msgDeviceNotFound)
		}
		return "", apperr.Storage(msgStatusFailed, err)
	}
	return device.Status, nil
}

// requireOwnership fails with the same 404 whether the device is missing or
// belongs to someone else, so callers cannot discover other users' device ids.
func (s *DeviceService) requireOwnership(ctx context.Context, deviceID, userID uint) error {
	owned, err := s.deviceRepo.IsOwnedBy(ctx, deviceID, userID)
	if err != nil {
		return apperr.Storage(msgOwnershipFailed, err)
	}
	if !owned {
		return apperr.NotFound(msgDeviceAccess)
	}
	return nil
}

// recordActivity appends to the audit trail. Failures are logged only; the
// mutation that triggered it has already succeeded.
func (s *DeviceService) recordActivity(ctx context.Context, deviceID uint, action string, at time.Time) {
	if err := s.logRepo.Append(ctx, deviceID, action, at); err != nil {
		log.Printf("❌ Activity log error (device %d): %v", deviceID, err)
	}
}

func (s *DeviceService) publishStatus(deviceID uint, status model.DeviceStatus, at time.Time) {
	if s.publisher != nil {
		s.publisher.PublishStatus(deviceID, status, at)
	}
}
