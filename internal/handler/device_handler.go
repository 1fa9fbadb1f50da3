package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mahmoud-sadrian/Bsc-project/internal/middleware"
	"github.com/mahmoud-sadrian/Bsc-project/internal/model"
	"github.com/mahmoud-sadrian/Bsc-project/internal/service"
)

// DeviceHandler handles the devices action and its sub-actions
type DeviceHandler struct {
	deviceService *service.DeviceService
}

func NewDeviceHandler(deviceService *service.DeviceService) *DeviceHandler {
	return &DeviceHandler{
		deviceService: deviceService,
	}
}

// ListDevices godoc
// @Summary List the caller's devices
// @Tags Devices
// @Produce json
// @Success 200 {object} model.DeviceListResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api.php?action=devices [get]
func (h *DeviceHandler) ListDevices(c *gin.Context) {
	devices, err := h.deviceService.ListDevices(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.DeviceListResponse{
		Devices: devices,
		Count:   len(devices),
	})
}

// ControlDevice godoc
// @Summary Switch a device ON or OFF
// @Tags Devices
// @Accept json
// @Produce json
// @Param device_id query int true "Device ID"
// @Param body body model.ControlRequest true "Target status"
// @Success 200 {object} model.ControlResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api.php?action=devices&sub_action=control [post]
func (h *DeviceHandler) ControlDevice(c *gin.Context) {
	var req model.ControlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = model.ControlRequest{}
	}

	deviceID := deviceIDParam(c)
	status, err := h.deviceService.ControlDevice(c.Request.Context(), middleware.CurrentUserID(c), deviceID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.ControlResponse{
		Message:  "Device status updated successfully",
		DeviceID: deviceID,
		Status:   status,
	})
}

// SetTimer godoc
// @Summary Arm a timer and power the device on
// @Description Replaces any active timer. Nothing turns the device off when it elapses.
// @Tags Devices
// @Accept json
// @Produce json
// @Param device_id query int true "Device ID"
// @Param body body model.TimerRequest true "Timer duration"
// @Success 200 {object} model.TimerResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api.php?action=devices&sub_action=timer [post]
func (h *DeviceHandler) SetTimer(c *gin.Context) {
	var req model.TimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = model.TimerRequest{}
	}

	deviceID := deviceIDParam(c)
	minutes, err := h.deviceService.SetTimer(c.Request.Context(), middleware.CurrentUserID(c), deviceID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.TimerResponse{
		Message:  "Timer set successfully",
		DeviceID: deviceID,
		Duration: minutes,
		Status:   model.DeviceStatusOn,
	})
}

// DeviceLogs godoc
// @Summary Recent activity of a device
// @Tags Devices
// @Produce json
// @Param device_id query int true "Device ID"
// @Success 200 {object} model.DeviceLogsResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api.php?action=devices&sub_action=logs [get]
func (h *DeviceHandler) DeviceLogs(c *gin.Context) {
	deviceID := deviceIDParam(c)
	logs, err := h.deviceService.DeviceLogs(c.Request.Context(), middleware.CurrentUserID(c), deviceID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.DeviceLogsResponse{
		DeviceID: deviceID,
		Logs:     logs,
		Count:    len(logs),
	})
}

// DeviceStatus godoc
// @Summary Read a device's power state
// @Description No authentication: embedded controllers poll this
// @Tags Devices
// @Produce json
// @Param device_id query int true "Device ID"
// @Success 200 {object} model.DeviceStatusResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api.php?action=devices&sub_action=status [get]
func (h *DeviceHandler) DeviceStatus(c *gin.Context) {
	deviceID := deviceIDParam(c)
	status, err := h.deviceService.DeviceStatus(c.Request.Context(), deviceID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.DeviceStatusResponse{
		DeviceID:  deviceID,
		Status:    status,
		Timestamp: time.Now().Format(model.TimestampLayout),
	})
}
