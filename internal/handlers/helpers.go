package handlers

import (
	"github.com/gin-gonic/gin"

	apperrors "financehub/internal/errors"
	"financehub/internal/middleware"
)

// respondWithError writes a consistent JSON error response through the
// shared middleware writer.
func respondWithError(c *gin.Context, err error) {
	middleware.WriteError(c, err)
}

// invalidInput wraps a binding failure. The client sees message; the
// validator detail is kept for the log.
func invalidInput(message string, err error) error {
	return apperrors.Wrap(apperrors.WithMessage(apperrors.ErrInvalidInput, message), err)
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse is returned by endpoints with nothing else to report.
type MessageResponse struct {
	Message string `json:"message"`
}
