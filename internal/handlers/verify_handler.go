package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"schoolhub/internal/models"
	"schoolhub/internal/services"
)

type VerifyHandler struct {
	loginService services.LoginService
	log          *zap.SugaredLogger
}

func NewVerifyHandler(loginService services.LoginService, log *zap.SugaredLogger) *VerifyHandler {
	return &VerifyHandler{loginService: loginService, log: log}
}

// @Summary      Verify login code (step 2)
// @Description  Exchanges a valid login code for a 7-day session token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        verify  body      models.VerifyOTPRequest  true  "Code"
// @Success      200     {object}  models.SessionResponse
// @Failure      400     {object}  models.ErrorResponse
// @Failure      404     {object}  models.ErrorResponse
// @Failure      500     {object}  models.ErrorResponse
// @Router       /verify-otp [post]
func (h *VerifyHandler) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	resp, err := h.loginService.VerifyOTP(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.log, "[auth][verify]", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
