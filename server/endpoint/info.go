package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/redisext/version"
)

var startTime = time.Now()

// Info reports the service name, configured version, build stamp and
// process uptime.
func Info(serviceName, serviceVersion string) gin.HandlerFunc {
	return func(c *gin.Context) {
		build := version.Get()
		c.JSON(http.StatusOK, gin.H{
			"service": serviceName,
			"version": serviceVersion,
			"build":   build,
			"uptime":  time.Since(startTime).Round(time.Second).String(),
		})
	}
}
