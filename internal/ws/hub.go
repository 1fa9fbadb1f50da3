package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/mahmoud-sadrian/Bsc-project/internal/model"
	"github.com/redis/go-redis/v9"
)

const redisChannel = "smartify:device-status"

// Hub tracks WebSocket subscribers per device and pushes status changes to them.
// With a Redis client, events travel through Pub/Sub so every API instance
// delivers to its own sockets; without one, delivery is local only.
type Hub struct {
	// deviceID -> subscribed connections (a device may hold several sockets)
	clients map[uint]map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client

	rdb *redis.Client
}

// NewHub creates a new WebSocket Hub. rdb may be nil.
func NewHub(rdb *redis.Client) *Hub {
	return &Hub{
		clients:    make(map[uint]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rdb:        rdb,
	}
}

// Run starts the Hub's main event loop
func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

// Register queues a client for registration with the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.DeviceID]; !ok {
		h.clients[client.DeviceID] = make(map[*Client]bool)
	}
	h.clients[client.DeviceID][client] = true
	log.Printf("✅ Device socket connected: device=%d (connections: %d)", client.DeviceID, len(h.clients[client.DeviceID]))
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.dropLocked(client)
	log.Printf("❌ Device socket disconnected: device=%d", client.DeviceID)
}

// dropLocked removes client and closes its send channel exactly once. Caller holds h.mu.
func (h *Hub) dropLocked(client *Client) {
	clients, ok := h.clients[client.DeviceID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.DeviceID)
	}
}

// PublishStatus announces a device's new power state to every subscriber.
// Delivery problems are logged and never reported back to the caller.
func (h *Hub) PublishStatus(deviceID uint, status model.DeviceStatus, at time.Time) {
	event := model.NewDeviceStatusEvent(deviceID, status, at)
	if h.rdb == nil {
		h.sendToLocalDevice(deviceID, event)
		return
	}
	h.publishToRedis(&TargetedEvent{
		DeviceID: deviceID,
		Event:    event,
	})
}

// sendToLocalDevice sends an event to a device's sockets on this instance only
func (h *Hub) sendToLocalDevice(deviceID uint, event *model.WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling event: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients[deviceID] {
		select {
		case client.send <- data:
		default:
			// Client's send buffer is full, drop the connection
			h.dropLocked(client)
		}
	}
}

// IsDeviceConnected checks if a device has any open socket on this instance
func (h *Hub) IsDeviceConnected(deviceID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[deviceID]
	return ok
}

// ConnectedDeviceIDs returns the devices with an open socket on this instance
func (h *Hub) ConnectedDeviceIDs() []uint {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]uint, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	return ids
}

// ========== Redis Pub/Sub for Horizontal Scaling ==========

// TargetedEvent wraps an event with the device it concerns
type TargetedEvent struct {
	DeviceID uint           `json:"device_id"`
	Event    *model.WSEvent `json:"event"`
}

func (h *Hub) publishToRedis(data *TargetedEvent) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("Error marshaling for Redis: %v", err)
		return
	}

	if err := h.rdb.Publish(context.Background(), redisChannel, jsonData).Err(); err != nil {
		log.Printf("⚠️  Error publishing device status to Redis: %v", err)
	}
}

func (h *Hub) subscribeRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, redisChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	log.Println("📡 Redis Pub/Sub subscriber started")

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var targeted TargetedEvent
			if err := json.Unmarshal([]byte(msg.Payload), &targeted); err != nil {
				log.Printf("Error unmarshaling Redis message: %v", err)
				continue
			}
			if targeted.Event != nil {
				h.sendToLocalDevice(targeted.DeviceID, targeted.Event)
			}
		}
	}
}
