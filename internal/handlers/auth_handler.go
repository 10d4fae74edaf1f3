package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"schoolhub/internal/models"
	"schoolhub/internal/services"
)

type AuthHandler struct {
	loginService services.LoginService
	log          *zap.SugaredLogger
}

func NewAuthHandler(loginService services.LoginService, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{loginService: loginService, log: log}
}

// @Summary      Log in (step 1)
// @Description  Checks the password for the given role and emails a 6-digit code
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credentials"
// @Success      200    {object}  models.LoginResponse
// @Failure      400    {object}  models.ErrorResponse
// @Failure      401    {object}  models.ErrorResponse
// @Failure      404    {object}  models.ErrorResponse
// @Failure      500    {object}  models.ErrorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Infow("[auth][login] bad request", "err", err)
		badRequest(c, err.Error())
		return
	}

	resp, err := h.loginService.Login(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.log, "[auth][login]", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Current session
// @Description  Returns the claims of the bearer token
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  models.ErrorResponse
// @Router       /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Success: false, Error: "no session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": claims})
}
