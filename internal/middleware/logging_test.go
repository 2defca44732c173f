package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLevel(t *testing.T) {
	tests := []struct {
		path   string
		status int
		want   slog.Level
	}{
		{"/formpages/1", fiber.StatusOK, slog.LevelInfo},
		{"/formpages/1", fiber.StatusSeeOther, slog.LevelInfo},
		{"/login", fiber.StatusTooManyRequests, slog.LevelWarn},
		{"/upload", fiber.StatusInternalServerError, slog.LevelError},
		{"/health/ready", fiber.StatusOK, slog.LevelDebug},
		{"/health/ready", fiber.StatusServiceUnavailable, slog.LevelError},
		{"/metrics", fiber.StatusOK, slog.LevelDebug},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, requestLevel(tt.path, tt.status), "%s %d", tt.path, tt.status)
	}
}

func TestCtxHandler_AddsRequestValues(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "test")

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, UserIDKey, uint(12))
	l.InfoContext(ctx, "page saved")

	assert.Contains(t, buf.String(), "request_id=req-1")
	assert.Contains(t, buf.String(), "user_id=12")
}

func TestStructuredLogger_UsesFiberErrorCode(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger
	Logger = newLogger(&buf, "test")
	t.Cleanup(func() { Logger = prev })

	app := fiber.New()
	app.Use(StructuredLogger())
	app.Get("/formpages/:page", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "no such page")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/formpages/12", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "status=404")
	assert.Contains(t, buf.String(), `error="no such page"`)
}
