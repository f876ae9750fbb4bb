package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-painel-dengue/internal/models"
)

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidChart):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidAgeBracket),
		errors.Is(err, models.ErrInvalidDate),
		errors.Is(err, models.ErrInvalidDateRange),
		errors.Is(err, models.ErrInvalidCode),
		errors.Is(err, models.ErrInvalidSex),
		errors.Is(err, models.ErrInvalidFormat):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrDatasetNotLoaded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
}
