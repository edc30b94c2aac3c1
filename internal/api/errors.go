package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/arcade-portal/internal/storage"
)

// Error codes carried in the envelope.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeUnknownGame  = "UNKNOWN_GAME"
	CodeInternal     = "INTERNAL_ERROR"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	ErrorCode  string `json:"errorCode"`
	Message    string `json:"message"`
}

// fail aborts the request with an error envelope.
func fail(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Success:    false,
		StatusCode: status,
		ErrorCode:  code,
		Message:    message,
	})
}

// failStorage maps a repository error to an envelope. Unknown errors are
// logged and reported as internal.
func (s *Server) failStorage(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		fail(c, http.StatusNotFound, CodeNotFound, "not found")
	case errors.Is(err, storage.ErrUserExists):
		fail(c, http.StatusConflict, CodeConflict, "email already registered")
	case errors.Is(err, storage.ErrInvalidMessage):
		fail(c, http.StatusBadRequest, CodeValidation, "message must be 1 to 500 characters")
	case errors.Is(err, storage.ErrInvalidReaction):
		fail(c, http.StatusBadRequest, CodeValidation, "unknown reaction")
	default:
		s.logger.Error("storage failure", "path", c.FullPath(), "error", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "internal error")
	}
}
