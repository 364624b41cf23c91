package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"social-feed-api/internal/adapters/identity"
	"social-feed-api/internal/repositories"
	"social-feed-api/internal/services"
	"social-feed-api/pkg/lambda"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// isValidationError checks if an error is a validation error
func isValidationError(err error) bool {
	return services.IsInvalidInput(err)
}

// isNotFoundError checks if an error is a not found error. Missing records
// surface as 400 responses, matching the error contract of the API.
func isNotFoundError(err error) bool {
	return repositories.IsNotFound(err)
}

// isDuplicateError checks if an error is a duplicate error
func isDuplicateError(err error) bool {
	return repositories.IsDuplicate(err) || identity.IsUserExists(err)
}

// isCursorError checks if an error is a malformed pagination cursor error
func isCursorError(err error) bool {
	return repositories.IsInvalidCursor(err)
}

// isAuthError checks if an error came back from the identity provider as a
// credential or confirmation failure
func isAuthError(err error) bool {
	return identity.IsAuthFailure(err)
}

// isClientError classifies errors the caller can act on. Everything else is
// an upstream failure: the cause is logged and never returned to the caller.
func isClientError(err error) bool {
	return isValidationError(err) ||
		isNotFoundError(err) ||
		isDuplicateError(err) ||
		isCursorError(err) ||
		isAuthError(err)
}

// respondError writes the error response for a gin handler
func respondError(c *gin.Context, op string, err error) {
	if isClientError(err) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	logrus.WithError(err).Error(op)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// errorResponse builds the error envelope for a Lambda handler
func errorResponse(op string, err error) *lambda.Response {
	if isClientError(err) {
		return lambda.Error(http.StatusBadRequest, err.Error())
	}
	logrus.WithError(err).Error(op)
	return lambda.Error(http.StatusInternalServerError, "internal server error")
}
