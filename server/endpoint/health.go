package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/redisext/component"
)

// HealthChecker returns health status for registered components.
type HealthChecker func(ctx context.Context) []component.Health

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status     string             `json:"status"`
	Service    string             `json:"service"`
	Timestamp  string             `json:"timestamp"`
	Components []component.Health `json:"components"`
}

// Health reports the aggregated status of every component. Any unhealthy
// component answers 503; a degraded one keeps 200.
func Health(serviceName string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := HealthResponse{
			Status:     string(component.StatusHealthy),
			Service:    serviceName,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			Components: []component.Health{},
		}
		if checker != nil {
			resp.Components = checker(c.Request.Context())
			resp.Status = string(aggregate(resp.Components))
		}

		httpStatus := http.StatusOK
		if resp.Status == string(component.StatusUnhealthy) {
			httpStatus = http.StatusServiceUnavailable
		}
		c.JSON(httpStatus, resp)
	}
}

func aggregate(healths []component.Health) component.HealthStatus {
	status := component.StatusHealthy
	for _, h := range healths {
		switch h.Status {
		case component.StatusUnhealthy:
			return component.StatusUnhealthy
		case component.StatusDegraded:
			status = component.StatusDegraded
		}
	}
	return status
}
