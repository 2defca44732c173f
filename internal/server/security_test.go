package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityMiddleware(t *testing.T) {
	h := newHarness(t)

	t.Run("Security Headers", func(t *testing.T) {
		resp := h.get(t, "/login", "")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get("X-Content-Type-Options"))
		assert.NotEmpty(t, resp.Header.Get("X-Frame-Options"))
		assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
	})

	t.Run("Session Cookie", func(t *testing.T) {
		resp := h.get(t, "/signup", "")
		var cookie *http.Cookie
		for _, c := range resp.Cookies() {
			if c.Name == session.CookieName {
				cookie = c
			}
		}
		require.NotNil(t, cookie)
		assert.True(t, cookie.HttpOnly)
		assert.False(t, cookie.Secure, "secure cookies are production only")
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
		assert.Equal(t, 3600, cookie.MaxAge)
	})

	t.Run("CORS", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
		req.Header.Set("Origin", "http://localhost:8000")
		resp := h.do(t, req, "")
		assert.Equal(t, "http://localhost:8000", resp.Header.Get("Access-Control-Allow-Origin"))
	})

	t.Run("Stale Cookie", func(t *testing.T) {
		resp := h.get(t, "/formpages/1", "no-such-session")
		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})
}
