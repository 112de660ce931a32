package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// HTTPObserver records per-request measurements.
type HTTPObserver interface {
	ObserveHTTPRequest(method, route string, status int, elapsed time.Duration)
}

// Metrics reports request counts and latency labelled by route template.
func Metrics(observer HTTPObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		observer.ObserveHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
