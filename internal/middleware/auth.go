package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mahmoud-sadrian/Bsc-project/internal/model"
	"github.com/mahmoud-sadrian/Bsc-project/internal/session"
)

// UserIDKey is the context key Authenticate stores the caller's id under
const UserIDKey = "user_id"

const msgAuthRequired = "Authentication required. Please login first."

// Authenticate is the auth guard. It requires a signed-in session, stores the
// caller's identity in the context and reports true; otherwise it writes the
// error response, aborts and reports false.
func Authenticate(c *gin.Context) bool {
	sess := session.FromContext(c)

	if sess.Err() != nil {
		// Store unreachable: we cannot tell whether the caller is signed in
		c.AbortWithStatusJSON(http.StatusInternalServerError, model.ErrorResponse{Error: "Session lookup failed"})
		return false
	}

	identity, ok := sess.CurrentUser()
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{Error: msgAuthRequired})
		return false
	}

	// Store user info in context for downstream handlers
	c.Set(UserIDKey, identity.UserID)
	return true
}

// CurrentUserID returns the id stored by Authenticate
func CurrentUserID(c *gin.Context) uint {
	return c.MustGet(UserIDKey).(uint)
}
