// Package api holds the JSON response envelope shared by every handler:
// {"success": bool, "data": ..., "error": "..."}.
package api

import (
	"errors"
	"net/http"

	custom_error "assetdesk/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": message})
}

// Error maps a domain or database error to the envelope in one place.
// Anything unrecognized is logged and reported as a generic 500.
func Error(c *gin.Context, err error) {
	var validationErr *custom_error.ValidationError
	var uniqueErr *custom_error.UniqueViolationError
	var fkErr *custom_error.ForeignKeyViolationError

	switch {
	case errors.As(err, &validationErr):
		Fail(c, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &uniqueErr):
		Fail(c, http.StatusBadRequest, uniqueErr.Error())
	case errors.As(err, &fkErr):
		Fail(c, http.StatusBadRequest, fkErr.Error())
	case errors.Is(err, custom_error.ErrNotFound):
		Fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, custom_error.ErrInvalidTransition),
		errors.Is(err, custom_error.ErrActiveMaintenance):
		Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, custom_error.ErrAssetInUse):
		Fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, custom_error.ErrInvalidCredentials):
		Fail(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, custom_error.ErrAccountDisabled):
		Fail(c, http.StatusForbidden, "Account disabled")
	default:
		zap.L().Error("unhandled request error", zap.Error(err), zap.String("path", c.FullPath()))
		Fail(c, http.StatusInternalServerError, "Internal server error")
	}
}
