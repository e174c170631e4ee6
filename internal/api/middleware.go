// =============================
// File: internal/api/middleware.go
// =============================
package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rovshanmuradov/curve-engine/internal/metrics"
)

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start).Seconds()

		metrics.LatencyBucket.WithLabelValues(c.FullPath()).Observe(duration)
	}
}
