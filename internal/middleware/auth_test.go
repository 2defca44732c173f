package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/models"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsers struct {
	users map[uint]*models.User
	err   error
}

func (s *stubUsers) GetByID(_ context.Context, id uint) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, models.NewNotFoundError("User", id)
}

func newGatedApp(t *testing.T, users UserLoader) (*fiber.App, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore()
	app := fiber.New()
	app.Use(session.NewManager(store, time.Hour, false).Handler())
	app.Get("/login-as/:id", func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")
		session.From(c).Login(uint(id), "applicant@example.com")
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/formpages/1", SessionRequired(users), func(c *fiber.Ctx) error {
		u := CurrentUser(c)
		if u == nil {
			return c.SendStatus(fiber.StatusTeapot)
		}
		assert.Equal(t, u.ID, c.Locals("userID"))
		return c.SendString(u.Email)
	})
	return app, store
}

func loginCookie(t *testing.T, app *fiber.App, id string) *http.Cookie {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/login-as/"+id, nil))
	require.NoError(t, err)
	for _, ck := range resp.Cookies() {
		if ck.Name == session.CookieName {
			return ck
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func TestSessionRequired(t *testing.T) {
	users := &stubUsers{users: map[uint]*models.User{
		1: {ID: 1, Email: "applicant@example.com"},
	}}

	t.Run("No session redirects to login", func(t *testing.T) {
		app, _ := newGatedApp(t, users)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/formpages/1", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	})

	t.Run("Authenticated session passes", func(t *testing.T) {
		app, _ := newGatedApp(t, users)
		ck := loginCookie(t, app, "1")

		req := httptest.NewRequest(http.MethodGet, "/formpages/1", nil)
		req.AddCookie(ck)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Missing user destroys session", func(t *testing.T) {
		app, store := newGatedApp(t, users)
		ck := loginCookie(t, app, "99")
		require.Equal(t, 1, store.Len())

		req := httptest.NewRequest(http.MethodGet, "/formpages/1", nil)
		req.AddCookie(ck)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
		assert.Equal(t, 0, store.Len())
	})

	t.Run("Lookup failure is an error", func(t *testing.T) {
		app, _ := newGatedApp(t, &stubUsers{err: errors.New("db down")})
		ck := loginCookie(t, app, "1")

		req := httptest.NewRequest(http.MethodGet, "/formpages/1", nil)
		req.AddCookie(ck)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}
