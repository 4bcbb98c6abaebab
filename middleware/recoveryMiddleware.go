package middleware

import (
	"fmt"
	"log"
	"net/http"

	"go-jewelry-order-management/helpers"

	"github.com/gin-gonic/gin"
)

// RecoveryWithAlert recovers from handler panics, answers with a generic
// 500 and raises an ops alert. The alert is best effort and never delays
// the response.
func RecoveryWithAlert() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		go func(path string, recovered interface{}) {
			if err := helpers.SendOpsAlert(fmt.Sprintf("Unhandled panic on %s: %v", path, recovered)); err != nil {
				log.Println("ops alert failed:", err)
			}
		}(c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}
