package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"schoolhub/internal/models"
	"schoolhub/internal/services"
)

type PasswordHandler struct {
	resetService services.PasswordResetService
	log          *zap.SugaredLogger
}

func NewPasswordHandler(resetService services.PasswordResetService, log *zap.SugaredLogger) *PasswordHandler {
	return &PasswordHandler{resetService: resetService, log: log}
}

// @Summary      Request a password reset code
// @Tags         Password
// @Accept       json
// @Produce      json
// @Param        body  body      models.ForgotPasswordRequest  true  "Account"
// @Success      200   {object}  models.MessageResponse
// @Failure      400   {object}  models.ErrorResponse
// @Failure      500   {object}  models.ErrorResponse
// @Router       /forgot-password [post]
func (h *PasswordHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.resetService.RequestReset(c.Request.Context(), req); err != nil {
		writeError(c, h.log, "[password-reset][request]", err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "If the account exists, a reset code has been sent to its email",
	})
}

// @Summary      Reset the password with a code
// @Tags         Password
// @Accept       json
// @Produce      json
// @Param        body  body      models.ResetPasswordRequest  true  "Code and new password"
// @Success      200   {object}  models.MessageResponse
// @Failure      400   {object}  models.ErrorResponse
// @Failure      500   {object}  models.ErrorResponse
// @Router       /reset-password [post]
func (h *PasswordHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.resetService.ResetPassword(c.Request.Context(), req); err != nil {
		writeError(c, h.log, "[password-reset][reset]", err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "Password updated"})
}
