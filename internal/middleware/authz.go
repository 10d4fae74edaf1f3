package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolhub/internal/authz"
)

// RequireRoles must run after AuthMiddleware.
func RequireRoles(allowed ...authz.Role) gin.HandlerFunc {
	allowedSet := map[string]struct{}{}
	for _, r := range allowed {
		allowedSet[r.Claim()] = struct{}{}
	}
	return func(c *gin.Context) {
		v, exists := c.Get(CtxRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "no role in context"})
			return
		}
		role, _ := v.(string)
		if _, ok := allowedSet[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "forbidden"})
			return
		}
		c.Next()
	}
}
