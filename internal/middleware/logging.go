package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLog writes one line per request. 5xx responses are logged as errors.
func (m Middleware) RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		status := c.Writer.Status()
		latency := time.Since(start)

		if status >= 500 {
			m.l.Errorf(ctx, "%s %s -> %d (%s)", c.Request.Method, c.FullPath(), status, latency)
			return
		}
		m.l.Debugf(ctx, "%s %s -> %d (%s)", c.Request.Method, c.FullPath(), status, latency)
	}
}
