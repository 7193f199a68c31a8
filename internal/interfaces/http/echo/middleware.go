package echo

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mohammadpnp/person-service/internal/infrastructure/dictionary"
	"github.com/sirupsen/logrus"
)

const loggerKey = "logger"

// RequestLogger stores a request-scoped logger in the echo context and logs
// every finished request. It must run after the RequestID middleware.
func RequestLogger(logger logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)

			entry := logger.WithField("request_id", requestID)
			c.Set(loggerKey, entry)
			if requestID != "" {
				c.SetRequest(c.Request().WithContext(dictionary.WithRequestID(c.Request().Context(), requestID)))
			}

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			entry.WithFields(logrus.Fields{
				"method":   c.Request().Method,
				"path":     c.Path(),
				"status":   c.Response().Status,
				"duration": time.Since(start).String(),
			}).Info("request handled")
			return nil
		}
	}
}

func loggerFrom(c echo.Context) logrus.FieldLogger {
	if entry, ok := c.Get(loggerKey).(logrus.FieldLogger); ok {
		return entry
	}
	return logrus.StandardLogger()
}
