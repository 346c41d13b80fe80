package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/laundry-service/internal/domain/model"
	"github.com/guttosm/laundry-service/internal/logger"
)

// RequestLogger returns a middleware that logs every request to the console
// and, when al is not nil, queues a copy for the log store.
func RequestLogger(al *AsyncLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		requestID := GetRequestID(c)
		statusCode := c.Writer.Status()
		method := c.Request.Method
		path := c.Request.URL.Path
		ip := c.ClientIP()
		userAgent := c.Request.UserAgent()
		actor := GetActor(c)

		log := logger.Logger().With().
			Str("request_id", requestID).
			Str("method", method).
			Str("path", path).
			Int("status_code", statusCode).
			Int64("duration_ms", latency.Milliseconds()).
			Str("ip", ip).
			Str("user_agent", userAgent).
			Str("actor", actor).
			Logger()

		switch {
		case statusCode >= 500:
			log.Error().Msg("HTTP request")
		case statusCode >= 400:
			log.Warn().Msg("HTTP request")
		default:
			log.Info().Msg("HTTP request")
		}

		if al == nil {
			return
		}
		entry := &model.LogEntry{
			Timestamp:  start.UTC(),
			Level:      getLogLevel(statusCode),
			Message:    "HTTP request",
			RequestID:  requestID,
			Method:     method,
			Path:       path,
			StatusCode: statusCode,
			Duration:   latency.Milliseconds(),
			IP:         ip,
			UserAgent:  userAgent,
			Actor:      actor,
		}
		if len(c.Errors) > 0 {
			entry.Error = c.Errors.Last().Error()
		}
		al.Log(entry)
	}
}

func getLogLevel(statusCode int) string {
	switch {
	case statusCode >= 500:
		return "error"
	case statusCode >= 400:
		return "warn"
	default:
		return "info"
	}
}
