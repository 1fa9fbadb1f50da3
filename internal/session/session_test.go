package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/mahmoud-sadrian/Bsc-project/pkg/auth"
	"github.com/redis/go-redis/v9"
)

const cookieName = "smartify_session"

func setupStore(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, NewRedisStore(rdb)
}

func setupRouter(store Store, tokens *auth.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewManager(store, tokens, CookieConfig{Name: cookieName})

	r := gin.New()
	r.Use(m.Middleware())
	r.POST("/login", func(c *gin.Context) {
		err := FromContext(c).SetCurrentUser(c.Request.Context(), Identity{UserID: 7, Username: "alice123", LoginTime: time.Now()})
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	r.GET("/me", func(c *gin.Context) {
		s := FromContext(c)
		if s.Err() != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		identity, ok := s.CurrentUser()
		if !ok {
			c.Status(http.StatusUnauthorized)
			return
		}
		c.String(http.StatusOK, identity.Username)
	})
	r.POST("/logout", func(c *gin.Context) {
		_ = FromContext(c).Destroy(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return r
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func do(r *gin.Engine, method, path string, cookie *http.Cookie, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mr, store := setupStore(t)
	ctx := context.Background()
	login := time.Unix(1714560000, 0)

	if err := store.Save(ctx, "abc", Identity{UserID: 3, Username: "bob", LoginTime: login}, time.Hour); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if ttl := mr.TTL("session:abc"); ttl != time.Hour {
		t.Errorf("TTL = %v, want 1h", ttl)
	}

	got, err := store.Load(ctx, "abc")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.UserID != 3 || got.Username != "bob" || !got.LoginTime.Equal(login) {
		t.Errorf("Load = %+v", got)
	}

	if err := store.Delete(ctx, "abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Load(ctx, "abc"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load after Delete err = %v, want ErrNotFound", err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	_, store := setupStore(t)
	r := setupRouter(store, auth.NewJWTManager("secret", time.Hour))

	if w := do(r, http.MethodGet, "/me", nil, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous /me = %d, want 401", w.Code)
	}

	w := do(r, http.MethodPost, "/login", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("/login = %d", w.Code)
	}
	cookie := sessionCookie(t, w)
	if !cookie.HttpOnly {
		t.Error("session cookie is not HttpOnly")
	}

	w = do(r, http.MethodGet, "/me", cookie, nil)
	if w.Code != http.StatusOK || w.Body.String() != "alice123" {
		t.Fatalf("/me with cookie = %d %q", w.Code, w.Body.String())
	}

	// Bearer fallback carries the same token
	w = do(r, http.MethodGet, "/me", nil, map[string]string{"Authorization": "Bearer " + cookie.Value})
	if w.Code != http.StatusOK {
		t.Fatalf("/me with bearer = %d", w.Code)
	}

	w = do(r, http.MethodPost, "/logout", cookie, nil)
	if cleared := sessionCookie(t, w); cleared.MaxAge >= 0 {
		t.Errorf("logout cookie MaxAge = %d, want expired", cleared.MaxAge)
	}

	// The old token no longer names a live session
	if w := do(r, http.MethodGet, "/me", cookie, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("/me after logout = %d, want 401", w.Code)
	}
}

func TestForgedCookieIsAnonymous(t *testing.T) {
	_, store := setupStore(t)
	r := setupRouter(store, auth.NewJWTManager("secret", time.Hour))

	forger := auth.NewJWTManager("wrong-secret", time.Hour)
	token, _ := forger.GenerateToken("sess", 7, "alice123")

	w := do(r, http.MethodGet, "/me", &http.Cookie{Name: cookieName, Value: token}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("forged cookie /me = %d, want 401", w.Code)
	}
}

func TestStoreOutageIsReported(t *testing.T) {
	mr, store := setupStore(t)
	tokens := auth.NewJWTManager("secret", time.Hour)
	r := setupRouter(store, tokens)

	cookie := sessionCookie(t, do(r, http.MethodPost, "/login", nil, nil))
	mr.Close()

	if w := do(r, http.MethodGet, "/me", cookie, nil); w.Code != http.StatusInternalServerError {
		t.Errorf("/me with store down = %d, want 500", w.Code)
	}
}
