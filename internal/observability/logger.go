// Package observability configures structured logging and request tracing
// for the HTTP server.
package observability

import (
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// LogFieldRequestID is the field name for the per-request id.
	LogFieldRequestID = "request_id"
	// LogFieldDuration is the field name for duration in milliseconds.
	LogFieldDuration = "duration_ms"
)

// SetupLogging installs the default slog handler: human-readable debug
// output in dev, JSON at info level in prod.
func SetupLogging(mode string) {
	var handler slog.Handler
	if mode == "prod" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))
}

// RequestLogger is echo middleware that assigns each request a generated id
// and logs its completion with timing and status.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			slog.Info("request completed",
				LogFieldRequestID, requestID,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				LogFieldDuration, time.Since(start).Milliseconds(),
			)
			return err
		}
	}
}
