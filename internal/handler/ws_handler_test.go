package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mahmoud-sadrian/Bsc-project/internal/model"
)

type statusFrame struct {
	Type    string                  `json:"type"`
	Payload model.DeviceStatusEvent `json:"payload"`
}

func readFrame(t *testing.T, conn *websocket.Conn) statusFrame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame statusFrame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return frame
}

func TestWebSocketStatusFeed(t *testing.T) {
	app := setupTestApp(t)
	_, aliceID := app.signedIn(t, "alice123")
	lamp := app.device(t, aliceID, "Lamp")

	srv := httptest.NewServer(app.router)
	defer srv.Close()

	url := fmt.Sprintf("ws%s/ws?device_id=%d", strings.TrimPrefix(srv.URL, "http"), lamp)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Current state arrives first
	frame := readFrame(t, conn)
	if frame.Type != model.WSEventDeviceStatus || frame.Payload.DeviceID != lamp || frame.Payload.Status != model.DeviceStatusOff {
		t.Fatalf("initial frame = %+v", frame)
	}

	deadline := time.Now().Add(2 * time.Second)
	for !app.hub.IsDeviceConnected(lamp) {
		if time.Now().After(deadline) {
			t.Fatal("socket never registered with the hub")
		}
		time.Sleep(5 * time.Millisecond)
	}

	on := "ON"
	if _, err := app.devices.ControlDevice(context.Background(), aliceID, lamp, model.ControlRequest{Status: &on}); err != nil {
		t.Fatalf("ControlDevice: %v", err)
	}

	frame = readFrame(t, conn)
	if frame.Payload.DeviceID != lamp || frame.Payload.Status != model.DeviceStatusOn {
		t.Errorf("pushed frame = %+v, want ON", frame)
	}
}

func TestWebSocketUnknownDevice(t *testing.T) {
	app := setupTestApp(t)
	srv := httptest.NewServer(app.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?device_id=424242"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("dial succeeded for a missing device")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("handshake response = %v, want 404", resp)
	}
}
