package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Owner restricts a route group to the configured owner ids. Requires JWT
// to run first.
func Owner(isOwner func(userID string) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userID, ok := userIDVal.(string)
		if !ok || !isOwner(userID) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "owner only"})
			return
		}
		c.Next()
	}
}
