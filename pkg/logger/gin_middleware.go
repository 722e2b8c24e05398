package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey ключ, под которым request id кладется в gin.Context
const RequestIDKey = "request_id"

// MemberIDKey ключ, под которым auth middleware кладет id участника
const MemberIDKey = "member_id"

// GinLoggerMiddleware пишет одну строку лога на каждый HTTP запрос.
// Успешные запросы к skipPaths (health, metrics) не логируются
func GinLoggerMiddleware(skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		if _, ok := skip[path]; ok && status < 400 {
			return
		}

		event := Info()
		if status >= 500 {
			event = Error()
		} else if status >= 400 {
			event = Warn()
		}

		event = event.
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Str("remote_addr", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Int("status", status).
			Int("size", c.Writer.Size()).
			Float64("duration_ms", float64(duration.Microseconds())/1000)

		if memberID, ok := c.Get(MemberIDKey); ok {
			event = event.Interface("member_id", memberID)
		}
		if len(c.Errors) > 0 {
			event = event.Str("error", c.Errors.String())
		}

		event.Msg("HTTP request")
	}
}
