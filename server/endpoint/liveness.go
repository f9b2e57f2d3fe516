package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Liveness confirms the process can serve HTTP. It never checks
// dependencies.
func Liveness(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "alive", "service": serviceName})
	}
}
