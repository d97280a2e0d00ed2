package handlers

import (
	"github.com/gin-gonic/gin"

	apperrors "finwallet/internal/errors"
	"finwallet/internal/middleware"
	"finwallet/internal/uuid"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error" example:"Unauthorized"`
	Code  string `json:"code" example:"UNAUTHORIZED"`
}

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthenticated if not present.
func getUserID(c *gin.Context) (string, error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return "", apperrors.ErrUnauthenticated
	}
	return userID, nil
}

// parsePathID reads an ID path parameter.
// Returns ErrInvalidInput if the parameter is not a valid UUID.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (string, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// validationError wraps a binding failure as a 422 with the binder's message.
func validationError(err error) error {
	return apperrors.WithMessage(apperrors.ErrValidationFailed, err.Error())
}

// respondWithError writes a consistent JSON error response.
func respondWithError(c *gin.Context, err error) {
	middleware.RespondError(c, err)
}
