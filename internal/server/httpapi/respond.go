package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dpetrovs/lockbox/internal/common"
)

// apiError is the wire shape of every failure response.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes surfaced to clients. Internal detail never crosses this
// boundary.
const (
	codeUsernameRequired      = "USERNAME_REQUIRED"
	codePasswordRequired      = "PASSWORD_REQUIRED"
	codeUsernameAlreadyExists = "USERNAME_ALREADY_EXISTS"
	codeInvalidCredentials    = "INVALID_CREDENTIALS"
	codeInvalidRefreshToken   = "INVALID_REFRESH_TOKEN"
	codeUnauthorized          = "UNAUTHORIZED"
	codeUserDeleted           = "USER_DELETED"
	codeValidationError       = "VALIDATION_ERROR"
	codeNotFound              = "NOT_FOUND"
	codeInternalError         = "INTERNAL_ERROR"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": apiError{Code: code, Message: message}})
}

// respondServiceError maps the service error taxonomy onto transport
// responses. Unknown errors collapse to 500 with no internal detail.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorUsernameRequired):
		respondError(c, http.StatusBadRequest, codeUsernameRequired, "Username is required.")
	case errors.Is(err, common.ErrorPasswordRequired):
		respondError(c, http.StatusBadRequest, codePasswordRequired, "Password is required.")
	case errors.Is(err, common.ErrorValidation):
		respondError(c, http.StatusBadRequest, codeValidationError, "Invalid request.")
	case errors.Is(err, common.ErrorAlreadyExists):
		respondError(c, http.StatusConflict, codeUsernameAlreadyExists, "Username already exists.")
	case errors.Is(err, common.ErrInvalidRefreshToken):
		respondError(c, http.StatusUnauthorized, codeInvalidRefreshToken, "Invalid refresh token.")
	case errors.Is(err, common.ErrUserDeleted):
		respondError(c, http.StatusUnauthorized, codeUserDeleted, "User account no longer exists.")
	case errors.Is(err, common.ErrorUnauthorized):
		respondError(c, http.StatusUnauthorized, codeUnauthorized, "Unauthorized.")
	case errors.Is(err, common.ErrorNotFound):
		respondError(c, http.StatusNotFound, codeNotFound, "Not found.")
	default:
		respondError(c, http.StatusInternalServerError, codeInternalError, "Internal error.")
	}
}
