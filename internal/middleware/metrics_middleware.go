package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roadwise/roadwise/internal/pkg/metrics"
)

// Metrics records request duration and count for every handled request.
// The route template is used as the label, not the raw path, so IDs do not
// explode the cardinality.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
