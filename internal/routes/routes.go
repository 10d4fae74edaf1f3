package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolhub/internal/authz"
	"schoolhub/internal/handlers"
	"schoolhub/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	verifyHandler *handlers.VerifyHandler,
	passwordHandler *handlers.PasswordHandler,
	tokens middleware.TokenParser,
) *gin.Engine {

	// ---- public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/login", authHandler.Login)
	r.POST("/verify-otp", verifyHandler.VerifyOTP)
	r.POST("/forgot-password", passwordHandler.ForgotPassword)
	r.POST("/reset-password", passwordHandler.ResetPassword)

	// ---- protected
	protected := r.Group("/", middleware.AuthMiddleware(tokens))
	{
		protected.GET("/me", middleware.RequireRoles(authz.All()...), authHandler.Me)
	}

	return r
}
