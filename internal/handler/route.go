package handler

import "net/http"

// Route names one domain action reachable through the API endpoint
type Route int

const (
	RouteInfo Route = iota + 1
	RouteSignup
	RouteSignin
	RouteLogout
	RouteListDevices
	RouteControlDevice
	RouteSetTimer
	RouteDeviceLogs
	RouteDeviceStatus
)

// AllRoutes lists every route; NewDispatcher requires a handler for each
var AllRoutes = []Route{
	RouteInfo,
	RouteSignup,
	RouteSignin,
	RouteLogout,
	RouteListDevices,
	RouteControlDevice,
	RouteSetTimer,
	RouteDeviceLogs,
	RouteDeviceStatus,
}

func (r Route) String() string {
	switch r {
	case RouteInfo:
		return "info"
	case RouteSignup:
		return "signup"
	case RouteSignin:
		return "signin"
	case RouteLogout:
		return "logout"
	case RouteListDevices:
		return "list_devices"
	case RouteControlDevice:
		return "control_device"
	case RouteSetTimer:
		return "set_timer"
	case RouteDeviceLogs:
		return "device_logs"
	case RouteDeviceStatus:
		return "device_status"
	default:
		return "unknown"
	}
}

// Access is the precondition a route places on the caller
type Access int

const (
	AccessPublic Access = iota
	AccessUser
)

// anySubAction matches every sub_action value, including none
const anySubAction = "*"

// Selector is the routing-relevant part of a request
type Selector struct {
	Method    string
	Action    string
	SubAction string
	HasDevice bool
}

// Rule maps one selector pattern to a route
type Rule struct {
	Method        string
	Action        string
	SubAction     string
	RequireDevice bool
	Route         Route
	Access        Access
}

// Matches reports whether sel satisfies r
func (r Rule) Matches(sel Selector) bool {
	if r.Method != sel.Method || r.Action != sel.Action {
		return false
	}
	if r.SubAction != anySubAction && r.SubAction != sel.SubAction {
		return false
	}
	return !r.RequireDevice || sel.HasDevice
}

// overlaps reports whether some selector could satisfy both rules
func (r Rule) overlaps(o Rule) bool {
	if r.Method != o.Method || r.Action != o.Action {
		return false
	}
	return r.SubAction == anySubAction || o.SubAction == anySubAction || r.SubAction == o.SubAction
}

// Rules is the routing table. Order does not matter: no two rules overlap.
var Rules = []Rule{
	{Method: http.MethodGet, Action: "", SubAction: anySubAction, Route: RouteInfo, Access: AccessPublic},
	{Method: http.MethodPost, Action: "signup", SubAction: anySubAction, Route: RouteSignup, Access: AccessPublic},
	{Method: http.MethodPost, Action: "signin", SubAction: anySubAction, Route: RouteSignin, Access: AccessPublic},
	{Method: http.MethodPost, Action: "logout", SubAction: anySubAction, Route: RouteLogout, Access: AccessPublic},
	{Method: http.MethodGet, Action: "devices", SubAction: "", Route: RouteListDevices, Access: AccessUser},
	{Method: http.MethodPost, Action: "devices", SubAction: "control", RequireDevice: true, Route: RouteControlDevice, Access: AccessUser},
	{Method: http.MethodPost, Action: "devices", SubAction: "timer", RequireDevice: true, Route: RouteSetTimer, Access: AccessUser},
	{Method: http.MethodGet, Action: "devices", SubAction: "logs", RequireDevice: true, Route: RouteDeviceLogs, Access: AccessUser},
	// Open to embedded controllers polling without credentials
	{Method: http.MethodGet, Action: "devices", SubAction: "status", RequireDevice: true, Route: RouteDeviceStatus, Access: AccessPublic},
}

// Resolve returns the rule matching sel
func Resolve(sel Selector) (Rule, bool) {
	for _, r := range Rules {
		if r.Matches(sel) {
			return r, true
		}
	}
	return Rule{}, false
}

// hasDevice treats "0" like an absent id; device ids start at 1
func hasDevice(raw string) bool {
	return raw != "" && raw != "0"
}
