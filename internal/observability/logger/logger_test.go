package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(restore)
	return logs
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New(nil, Config{Level: "loud"})
	require.Error(t, err)
}

func TestFromContext_AddsRequestID(t *testing.T) {
	logs := observe(t)

	FromContext(WithRequestID(context.Background(), "req-1")).Info("hello")
	FromContext(context.Background()).Info("bare")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	assert.NotContains(t, entries[1].ContextMap(), "request_id")
}

func TestFiberMiddleware(t *testing.T) {
	logs := observe(t)

	app := fiber.New()
	app.Use(requestid.New(requestid.Config{Generator: func() string { return "fixed-id" }}))
	app.Use(FiberMiddleware())

	var seen string
	app.Get("/insights/bookings", func(c *fiber.Ctx) error {
		seen = RequestIDFromContext(c.UserContext())
		return c.SendStatus(http.StatusOK)
	})
	app.Get("/internal/metrics", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(http.StatusServiceUnavailable, "down")
	})

	for _, target := range []string{"/insights/bookings", "/internal/metrics", "/boom"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
		require.NoError(t, err)
		_ = resp.Body.Close()
	}

	assert.Equal(t, "fixed-id", seen)

	entries := logs.FilterMessage("http_request").All()
	require.Len(t, entries, 3)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "/insights/bookings", entries[0].ContextMap()["route"])
	assert.Equal(t, "fixed-id", entries[0].ContextMap()["request_id"])
	assert.EqualValues(t, http.StatusOK, entries[0].ContextMap()["status"])

	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)

	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.EqualValues(t, http.StatusServiceUnavailable, entries[2].ContextMap()["status"])
}
