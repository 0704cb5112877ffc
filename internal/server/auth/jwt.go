// Package auth provides the credential primitives used by the user service:
// signed access tokens, opaque refresh tokens, and bcrypt secret hashing.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dpetrovs/lockbox/internal/common"
)

const (
	// Issuer and Audience are embedded in every access token and checked
	// on verification.
	Issuer   = "lockbox"
	Audience = "lockbox-clients"
)

// Claims carries the registered claims plus the display username. The
// subject claim holds the user id.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"uname"`
}

// GenerateAccessToken mints a signed HS256 token for userID, valid for
// validityDuration from now.
func GenerateAccessToken(userID, username string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Username: username,
	})
	return token.SignedString(secretKey)
}

// ParseAccessToken verifies signature, signing method, issuer, audience,
// and expiry, and returns the embedded claims. Opaque refresh tokens never
// parse as JWTs, so the two token kinds cannot be confused.
func ParseAccessToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	}, jwt.WithIssuer(Issuer), jwt.WithAudience(Audience), jwt.WithExpirationRequired())
	if err != nil {
		return nil, common.ErrInvalidToken
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

// GenerateRefreshToken mints an opaque, high-entropy, URL-safe token. It
// has no embedded structure; its only meaning is as a session store key.
func GenerateRefreshToken() (string, error) {
	return common.MakeRandString(32)
}
