package api

import (
	"github.com/gin-gonic/gin"
	"github.com/smartcowork/cowork-gin/internal/metrics"
)

// MetricsHandler exposes the Prometheus scrape endpoint.
func MetricsHandler(c *gin.Context) {
	metrics.Handler().ServeHTTP(c.Writer, c.Request)
}
