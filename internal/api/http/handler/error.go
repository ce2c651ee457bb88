package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/lostfound-server/internal/model"
	"github.com/dtroode/lostfound-server/internal/service"
)

func errorStatus(err error) (int, string) {
	var (
		validationErr *model.ValidationError
		conflictErr   *model.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Message
	case errors.Is(err, service.ErrUserIDRequired):
		return http.StatusUnauthorized, "Unauthorized. User ID required."
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.As(err, &conflictErr):
		if conflictErr.Field == "username" {
			return http.StatusConflict, "Username already taken"
		}
		return http.StatusConflict, conflictErr.Error()
	case errors.Is(err, model.ErrStorage):
		return http.StatusServiceUnavailable, "storage unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// handleError records err on the context and aborts with the mapped status.
func handleError(c *gin.Context, err error) {
	status, message := errorStatus(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
