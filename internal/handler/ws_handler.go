package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/mahmoud-sadrian/Bsc-project/internal/model"
	"github.com/mahmoud-sadrian/Bsc-project/internal/service"
	"github.com/mahmoud-sadrian/Bsc-project/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Embedded clients send no Origin header
	},
}

// WSHandler streams device status changes over WebSocket
type WSHandler struct {
	hub           *ws.Hub
	deviceService *service.DeviceService
}

func NewWSHandler(hub *ws.Hub, deviceService *service.DeviceService) *WSHandler {
	return &WSHandler{
		hub:           hub,
		deviceService: deviceService,
	}
}

// HandleWebSocket upgrades HTTP to WebSocket for one device's status feed.
// Client connects with: ws://host/ws?device_id=<id>
// The current status is pushed right away, then every change after it.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	deviceID := deviceIDParam(c)

	// Same trust level as the status read path: existence is the only check
	status, err := h.deviceService.DeviceStatus(c.Request.Context(), deviceID)
	if err != nil {
		respondError(c, err)
		return
	}

	// Upgrade HTTP to WebSocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := ws.NewClient(h.hub, conn, deviceID)
	client.Send(model.NewDeviceStatusEvent(deviceID, status, time.Now()))
	h.hub.Register(client)

	// Start read/write pumps in goroutines
	go client.WritePump()
	go client.ReadPump()
}
