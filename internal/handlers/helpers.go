package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"schoolhub/internal/middleware"
	"schoolhub/internal/models"
	"schoolhub/internal/services"
	"schoolhub/internal/utils"
)

// statusFor maps service errors to an HTTP status and a client-safe message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrMissingSchoolID),
		errors.Is(err, services.ErrWeakPassword),
		errors.Is(err, services.ErrPasswordTooLong):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrTeacherNotFound):
		return http.StatusNotFound, services.ErrTeacherNotFound.Error()
	case errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound, services.ErrUserNotFound.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, services.ErrInvalidCredentials.Error()
	case errors.Is(err, services.ErrInvalidOTP):
		return http.StatusBadRequest, services.ErrInvalidOTP.Error()
	case errors.Is(err, services.ErrSchoolNotAssociated):
		return http.StatusNotFound, services.ErrSchoolNotAssociated.Error()
	case errors.Is(err, services.ErrEmailMissing):
		return http.StatusInternalServerError, services.ErrEmailMissing.Error()
	case errors.Is(err, services.ErrEmailSend):
		return http.StatusInternalServerError, services.ErrEmailSend.Error()
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func writeError(c *gin.Context, log *zap.SugaredLogger, op string, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Errorw(op+" failed", "status", status, "err", err)
	}
	c.JSON(status, models.ErrorResponse{Success: false, Error: msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Error: msg})
}

func getClaims(c *gin.Context) (*utils.SessionClaims, bool) {
	v, ok := c.Get(middleware.CtxClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.SessionClaims)
	return claims, ok && claims != nil
}
