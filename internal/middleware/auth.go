package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"schoolhub/internal/utils"
)

const (
	CtxUserID   = "user_id"
	CtxRole     = "role"
	CtxSchoolID = "school_id"
	CtxClaims   = "claims"
)

// TokenParser is satisfied by *utils.TokenManager.
type TokenParser interface {
	Parse(token string) (*utils.SessionClaims, error)
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": msg})
}

func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		// preflight
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			abortUnauthorized(c, "Missing or invalid Authorization header")
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxSchoolID, claims.SchoolID)
		c.Set(CtxClaims, claims)

		c.Next()
	}
}
