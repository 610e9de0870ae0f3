package endpoint

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/promptprobe/observability"
)

// HealthChecker builds the current service health report.
type HealthChecker func(ctx context.Context) *observability.ServiceHealth

// Health returns a handler that reports service health including component
// statuses. A down service answers 503.
func Health(checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if checker == nil {
			c.JSON(http.StatusOK, gin.H{"status": observability.HealthStatusUp})
			return
		}

		report := checker(c.Request.Context())
		httpStatus := http.StatusOK
		if report.Status == observability.HealthStatusDown {
			httpStatus = http.StatusServiceUnavailable
		}
		c.JSON(httpStatus, report)
	}
}
