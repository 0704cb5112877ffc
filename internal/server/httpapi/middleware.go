package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dpetrovs/lockbox/internal/server/auth"
)

const (
	ctxUserIDKey   = "userID"
	ctxUsernameKey = "username"
)

// authRequired verifies the bearer access token and injects the subject
// user id and username into the request context. Only signature, issuer,
// audience, and expiry are checked; a deleted account's token stays
// structurally valid until it expires and is caught by the handlers that
// touch the user store.
func authRequired(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			respondError(c, http.StatusUnauthorized, codeUnauthorized, "Missing token.")
			return
		}
		claims, err := auth.ParseAccessToken(token, jwtSecret)
		if err != nil {
			respondError(c, http.StatusUnauthorized, codeUnauthorized, "Invalid token.")
			return
		}
		c.Set(ctxUserIDKey, claims.Subject)
		c.Set(ctxUsernameKey, claims.Username)
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.Split(header, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// currentUserID returns the user id injected by authRequired.
func currentUserID(c *gin.Context) string {
	return c.GetString(ctxUserIDKey)
}
