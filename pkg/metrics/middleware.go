package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// GinPrometheusMiddleware собирает http_requests_total и http_request_duration_seconds
func GinPrometheusMiddleware(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" || c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		start := time.Now()

		HttpRequestsInFlight.WithLabelValues(serviceName).Inc()
		defer HttpRequestsInFlight.WithLabelValues(serviceName).Dec()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		path := routePath(c)

		HttpRequestsTotal.WithLabelValues(serviceName, c.Request.Method, path, status).Inc()
		HttpRequestDuration.WithLabelValues(serviceName, c.Request.Method, path).Observe(duration)
	}
}

// routePath возвращает шаблон маршрута (/api/products/:id), чтобы id не раздували кардинальность
func routePath(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}
