package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mahmoud-sadrian/Bsc-project/internal/model"
)

const apiVersion = "1.0"

var endpointListing = map[string]map[string]string{
	"Authentication": {
		"POST /api.php?action=signup": "Register new user",
		"POST /api.php?action=signin": "User login",
		"POST /api.php?action=logout": "User logout",
	},
	"Devices": {
		"GET /api.php?action=devices":                                 "Get user devices",
		"POST /api.php?action=devices&sub_action=control&device_id=1": "Control device",
		"POST /api.php?action=devices&sub_action=timer&device_id=1":   "Set timer",
		"GET /api.php?action=devices&sub_action=logs&device_id=1":     "Get device logs",
		"GET /api.php?action=devices&sub_action=status&device_id=1":   "Get device status",
	},
}

// Info godoc
// @Summary API metadata and endpoint listing
// @Tags API
// @Produce json
// @Success 200 {object} model.InfoResponse
// @Router /api.php [get]
func Info(c *gin.Context) {
	c.JSON(http.StatusOK, model.InfoResponse{
		Message:   "Smartify24 API 🚀",
		Version:   apiVersion,
		Timestamp: time.Now().Format(model.TimestampLayout),
		Endpoints: endpointListing,
	})
}
