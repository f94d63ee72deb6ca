package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/metrics"
)

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		metrics.RecordHTTPRequest(
			c.Request.Method,
			c.FullPath(),
			status,
			duration,
		)
	}
}
