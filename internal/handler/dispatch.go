package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mahmoud-sadrian/Bsc-project/internal/middleware"
)

const msgEndpointNotFound = "Invalid action or endpoint not found"

// Dispatcher serves the single API endpoint, choosing a handler from the
// request's method, action, sub_action and device_id.
type Dispatcher struct {
	handlers map[Route]gin.HandlerFunc
}

// NewDispatcher binds a handler to every route. It panics when a route in
// AllRoutes has no handler, so a gap is caught at startup.
func NewDispatcher(handlers map[Route]gin.HandlerFunc) *Dispatcher {
	for _, r := range AllRoutes {
		if handlers[r] == nil {
			panic(fmt.Sprintf("handler: no handler bound for route %s", r))
		}
	}
	return &Dispatcher{handlers: handlers}
}

// Handle resolves the request to a route, applies the auth guard for
// user-only routes and runs the bound handler. OPTIONS always gets an empty 200.
func (d *Dispatcher) Handle(c *gin.Context) {
	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusOK)
		return
	}

	rule, ok := Resolve(Selector{
		Method:    c.Request.Method,
		Action:    c.Query("action"),
		SubAction: c.Query("sub_action"),
		HasDevice: hasDevice(c.Query("device_id")),
	})
	if !ok {
		respondNotFound(c)
		return
	}

	if rule.Access == AccessUser && !middleware.Authenticate(c) {
		return
	}

	d.handlers[rule.Route](c)
}
