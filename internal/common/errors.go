// Package common defines shared constants and sentinel errors used across
// Lockbox components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Input validation errors.
	ErrorValidation = errors.New("validation error")

	// Registration validation errors.
	ErrorUsernameRequired = errors.New("username is required")
	ErrorPasswordRequired = errors.New("password is required")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrUserDeleted is returned when an operation discovers that its subject
	// account no longer exists.
	ErrUserDeleted = errors.New("user account no longer exists")
)
