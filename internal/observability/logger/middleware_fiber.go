package logger

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// FiberMiddleware logs each request and puts the request id assigned by the
// requestid middleware into the user context.
func FiberMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
		if requestID == "" {
			requestID = strings.TrimSpace(c.Get(fiber.HeaderXRequestID))
		}
		c.SetUserContext(WithRequestID(c.UserContext(), requestID))

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = http.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		route := c.Route().Path
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		log := FromContext(c.UserContext())
		switch {
		case status >= http.StatusInternalServerError:
			log.Error("http_request", fields...)
		case strings.HasPrefix(route, "/internal/"):
			log.Debug("http_request", fields...)
		default:
			log.Info("http_request", fields...)
		}
		return err
	}
}
