// Package httpapi exposes the Lockbox services over HTTP. It owns routing,
// request binding, bearer authentication, and the mapping of service
// errors to transport responses.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRequest is the registration payload. AuthHash is a client-derived
// password hash, treated server-side as an opaque secret.
type RegisterRequest struct {
	Username     string `json:"username" binding:"required"`
	AuthHash     string `json:"auth_hash" binding:"required"`
	PasswordHint string `json:"password_hint"`
}

// RegisterResponse carries the new account id. Registration issues no
// tokens; clients log in separately.
type RegisterResponse struct {
	UserID string `json:"user_id"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	AuthHash string `json:"auth_hash" binding:"required"`
}

// LoginResponse carries the minted token pair plus the user identity.
type LoginResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         interface{} `json:"user"`
}

// RefreshRequest is the token rotation payload.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse carries a rotated token pair.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidationError, err.Error())
		return
	}

	userID, err := s.users.Register(c.Request.Context(), req.Username, req.AuthHash, req.PasswordHint)
	if err != nil {
		s.logger.Warn(c.Request.Context(), "registration failed", "username", req.Username, "error", err.Error())
		respondServiceError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "user registered", "user_id", userID, "username", req.Username)
	c.JSON(http.StatusCreated, RegisterResponse{UserID: userID})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnauthorized, codeInvalidCredentials, "Invalid credentials.")
		return
	}

	result, err := s.users.Login(c.Request.Context(), req.Username, req.AuthHash)
	if err != nil {
		// uniform response; do not reveal whether the username exists
		s.logger.Warn(c.Request.Context(), "login failed", "username", req.Username)
		respondError(c, http.StatusUnauthorized, codeInvalidCredentials, "Invalid credentials.")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		User:         result.User,
	})
}

func (s *Server) handleRefresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnauthorized, codeInvalidRefreshToken, "Invalid refresh token.")
		return
	}

	pair, err := s.users.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
