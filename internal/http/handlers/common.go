package handlers

import (
	"net/http"

	"rentalprima/internal/domain"
	"rentalprima/internal/http/middleware"
	"rentalprima/internal/utils"

	"github.com/gin-gonic/gin"
)

// RespondData writes the success envelope.
func RespondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// RespondList writes the success envelope with a total count.
func RespondList(c *gin.Context, data any, count int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   count,
		"data":    data,
	})
}

// RespondMessage writes a success envelope carrying only a message.
func RespondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}

// RespondError writes the error envelope. The underlying error detail
// is attached for client errors, and for server errors only in debug
// mode.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"success": false,
		"message": message,
	}
	if err != nil && (status < http.StatusInternalServerError || gin.IsDebugging()) {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// RespondDomainError maps the error taxonomy onto HTTP statuses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		RespondError(c, http.StatusBadRequest, err.Error(), nil)
	case domain.IsUnauthorized(err):
		RespondError(c, http.StatusUnauthorized, err.Error(), nil)
	case domain.IsForbidden(err):
		RespondError(c, http.StatusForbidden, err.Error(), nil)
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, err.Error(), nil)
	default:
		utils.LogEvent(middleware.GetRequestID(c), "http", "internal_error", err.Error())
		RespondError(c, http.StatusInternalServerError, "Server Error", err)
	}
}

// BindJSONOrError ensures the body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "request body is required", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request payload", err)
		return false
	}
	return true
}
