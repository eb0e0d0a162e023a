package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/mtmt/internal/common"
	"github.com/dmitrijs2005/mtmt/internal/server/dto"
	"github.com/gin-gonic/gin"
)

// Response is the envelope of every JSON body.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

const (
	msgSuccess            = "success"
	msgInvalidBody        = "Invalid request body"
	msgInvalidRole        = "Role must be 'mentor' or 'mentee'"
	msgValidationFailed   = "Validation failed"
	msgInvalidCredentials = "Invalid email or password"
	msgUnauthorized       = "Unauthorized"
	msgAccessDenied       = "Access denied"
	msgEmailExists        = "Email already exists"
	msgNotFound           = "Not found"
	msgInternal           = "Internal server error"
)

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Status: http.StatusOK, Message: msgSuccess, Data: data})
}

func abort(c *gin.Context, status int, message string, data any) {
	c.AbortWithStatusJSON(status, Response{Status: status, Message: message, Data: data})
}

// statusFor maps an error to exactly one status, message and optional data.
func statusFor(err error) (int, string, any) {
	var verr *dto.ValidationError

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, msgValidationFailed, verr.Fields
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest, msgValidationFailed, nil
	case errors.Is(err, common.ErrInvalidRole):
		return http.StatusBadRequest, msgInvalidRole, nil
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, msgInvalidCredentials, nil
	case errors.Is(err, common.ErrUnauthenticated), errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, msgUnauthorized, nil
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden, msgAccessDenied, nil
	case errors.Is(err, common.ErrEmailAlreadyExists):
		return http.StatusConflict, msgEmailExists, nil
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, msgNotFound, nil
	default:
		return http.StatusInternalServerError, msgInternal, nil
	}
}

// abortWithError writes the envelope statusFor maps err to.
func abortWithError(c *gin.Context, err error) {
	status, msg, data := statusFor(err)
	abort(c, status, msg, data)
}

// fail logs server-side causes and writes the mapped envelope.
func (s *Server) fail(c *gin.Context, err error) {
	status, _, _ := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err)
	} else {
		s.logger.Debug(c.Request.Context(), "request rejected", "path", c.Request.URL.Path, "status", status, "error", err)
	}
	abortWithError(c, err)
}
