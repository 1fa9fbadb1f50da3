package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		sel       Selector
		wantRoute Route
		wantOK    bool
	}{
		{"info", Selector{Method: http.MethodGet}, RouteInfo, true},
		{"info ignores sub_action", Selector{Method: http.MethodGet, SubAction: "x"}, RouteInfo, true},
		{"signup", Selector{Method: http.MethodPost, Action: "signup"}, RouteSignup, true},
		{"signin", Selector{Method: http.MethodPost, Action: "signin"}, RouteSignin, true},
		{"logout", Selector{Method: http.MethodPost, Action: "logout"}, RouteLogout, true},
		{"list devices", Selector{Method: http.MethodGet, Action: "devices"}, RouteListDevices, true},
		{"list devices with device id", Selector{Method: http.MethodGet, Action: "devices", HasDevice: true}, RouteListDevices, true},
		{"control", Selector{Method: http.MethodPost, Action: "devices", SubAction: "control", HasDevice: true}, RouteControlDevice, true},
		{"timer", Selector{Method: http.MethodPost, Action: "devices", SubAction: "timer", HasDevice: true}, RouteSetTimer, true},
		{"logs", Selector{Method: http.MethodGet, Action: "devices", SubAction: "logs", HasDevice: true}, RouteDeviceLogs, true},
		{"status", Selector{Method: http.MethodGet, Action: "devices", SubAction: "status", HasDevice: true}, RouteDeviceStatus, true},

		{"control without device", Selector{Method: http.MethodPost, Action: "devices", SubAction: "control"}, 0, false},
		{"status without device", Selector{Method: http.MethodGet, Action: "devices", SubAction: "status"}, 0, false},
		{"control via GET", Selector{Method: http.MethodGet, Action: "devices", SubAction: "control", HasDevice: true}, 0, false},
		{"signup via GET", Selector{Method: http.MethodGet, Action: "signup"}, 0, false},
		{"unknown action", Selector{Method: http.MethodPost, Action: "reboot"}, 0, false},
		{"unknown sub_action", Selector{Method: http.MethodPost, Action: "devices", SubAction: "schedule", HasDevice: true}, 0, false},
		{"info via POST", Selector{Method: http.MethodPost}, 0, false},
		{"DELETE", Selector{Method: http.MethodDelete, Action: "devices", HasDevice: true}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, ok := Resolve(tt.sel)
			if ok != tt.wantOK {
				t.Fatalf("Resolve ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && rule.Route != tt.wantRoute {
				t.Errorf("Resolve route = %s, want %s", rule.Route, tt.wantRoute)
			}
		})
	}
}

func TestRulesDoNotOverlap(t *testing.T) {
	for i := range Rules {
		for j := i + 1; j < len(Rules); j++ {
			if Rules[i].overlaps(Rules[j]) {
				t.Errorf("rules %s and %s can match the same request", Rules[i].Route, Rules[j].Route)
			}
		}
	}
}

func TestEveryRouteHasExactlyOneRule(t *testing.T) {
	seen := map[Route]int{}
	for _, r := range Rules {
		seen[r.Route]++
	}
	for _, route := range AllRoutes {
		if seen[route] != 1 {
			t.Errorf("route %s has %d rules, want 1", route, seen[route])
		}
		delete(seen, route)
	}
	for route := range seen {
		t.Errorf("rule for route %s missing from AllRoutes", route)
	}
}

func TestRouteAccess(t *testing.T) {
	public := map[Route]bool{
		RouteInfo:         true,
		RouteSignup:       true,
		RouteSignin:       true,
		RouteLogout:       true,
		RouteDeviceStatus: true,
	}
	for _, r := range Rules {
		want := AccessUser
		if public[r.Route] {
			want = AccessPublic
		}
		if r.Access != want {
			t.Errorf("route %s access = %v, want %v", r.Route, r.Access, want)
		}
	}
}

func TestNewDispatcherPanicsOnMissingHandler(t *testing.T) {
	handlers := map[Route]gin.HandlerFunc{}
	for _, r := range AllRoutes {
		handlers[r] = func(*gin.Context) {}
	}
	delete(handlers, RouteSetTimer)

	defer func() {
		if recover() == nil {
			t.Fatal("NewDispatcher did not panic for an unbound route")
		}
	}()
	NewDispatcher(handlers)
}

func TestHasDevice(t *testing.T) {
	tests := map[string]bool{
		"":    false,
		"0":   false,
		"1":   true,
		"abc": true,
	}
	for raw, want := range tests {
		if got := hasDevice(raw); got != want {
			t.Errorf("hasDevice(%q) = %v, want %v", raw, got, want)
		}
	}
}
