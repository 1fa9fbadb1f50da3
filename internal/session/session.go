// Package session gives each request an explicit session capability backed by a
// server-side Store and a signed cookie.
package session

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mahmoud-sadrian/Bsc-project/pkg/auth"
)

const contextKey = "session"

// CookieConfig controls the session cookie
type CookieConfig struct {
	Name   string
	Secure bool
}

// Manager issues, resumes and destroys sessions
type Manager struct {
	store  Store
	tokens *auth.JWTManager
	cookie CookieConfig
}

func NewManager(store Store, tokens *auth.JWTManager, cookie CookieConfig) *Manager {
	return &Manager{
		store:  store,
		tokens: tokens,
		cookie: cookie,
	}
}

// Session is the per-request view of the caller's session
type Session struct {
	m        *Manager
	c        *gin.Context
	id       string
	identity *Identity
	err      error
}

// Middleware resumes the session named by the request cookie (or bearer token)
// and stores the capability on the gin context. It never aborts: anonymous
// requests simply carry an empty session.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := &Session{m: m, c: c}
		if token := m.tokenFrom(c); token != "" {
			s.resume(c.Request.Context(), token)
		}
		c.Set(contextKey, s)
		c.Next()
	}
}

// FromContext returns the session installed by Middleware
func FromContext(c *gin.Context) *Session {
	return c.MustGet(contextKey).(*Session)
}

func (m *Manager) tokenFrom(c *gin.Context) string {
	if cookie, err := c.Cookie(m.cookie.Name); err == nil && cookie != "" {
		return cookie
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func (s *Session) resume(ctx context.Context, token string) {
	claims, err := s.m.tokens.ValidateToken(token)
	if err != nil {
		// Forged or expired cookie: treat as anonymous
		return
	}

	identity, err := s.m.store.Load(ctx, claims.SessionID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("⚠️  Session store lookup failed: %v", err)
			s.err = err
		}
		return
	}
	if identity.UserID != claims.UserID {
		return
	}

	s.id = claims.SessionID
	s.identity = identity
}

// CurrentUser returns the signed-in identity, if any
func (s *Session) CurrentUser() (Identity, bool) {
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

// Err reports a store failure hit while resuming the session
func (s *Session) Err() error {
	return s.err
}

// SetCurrentUser starts a fresh session for identity and sends the cookie.
// Any session the request already carried is discarded first.
func (s *Session) SetCurrentUser(ctx context.Context, identity Identity) error {
	if s.id != "" {
		if err := s.m.store.Delete(ctx, s.id); err != nil {
			log.Printf("⚠️  Failed to drop previous session %s: %v", s.id, err)
		}
	}

	id := uuid.NewString()
	ttl := s.m.tokens.Expiry()
	if err := s.m.store.Save(ctx, id, identity, ttl); err != nil {
		return err
	}

	token, err := s.m.tokens.GenerateToken(id, identity.UserID, identity.Username)
	if err != nil {
		_ = s.m.store.Delete(ctx, id)
		return err
	}

	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(s.m.cookie.Name, token, int(ttl.Seconds()), "/", "", s.m.cookie.Secure, true)

	s.id = id
	s.identity = &identity
	return nil
}

// Destroy forgets the session server-side and expires the cookie.
// The cookie is cleared even when the store delete fails.
func (s *Session) Destroy(ctx context.Context) error {
	var err error
	if s.id != "" {
		err = s.m.store.Delete(ctx, s.id)
	}

	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(s.m.cookie.Name, "", -1, "/", "", s.m.cookie.Secure, true)

	s.id = ""
	s.identity = nil
	return err
}
