package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/dpetrovs/lockbox/internal/common"
)

var testSecret = []byte("test-secret")

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	tokenString, err := GenerateAccessToken("u1", "alice", testSecret, time.Minute)
	require.NoError(t, err)

	claims, err := ParseAccessToken(tokenString, testSecret)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.Subject)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, Issuer, claims.Issuer)
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	tokenString, err := GenerateAccessToken("u1", "alice", testSecret, time.Minute)
	require.NoError(t, err)

	_, err = ParseAccessToken(tokenString, []byte("other-secret"))
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseAccessToken_Expired(t *testing.T) {
	tokenString, err := GenerateAccessToken("u1", "alice", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseAccessToken(tokenString, testSecret)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseAccessToken_WrongIssuer(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		Issuer:    "somebody-else",
		Audience:  jwt.ClaimStrings{Audience},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	})
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)

	_, err = ParseAccessToken(signed, testSecret)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseAccessToken_RejectsOpaqueToken(t *testing.T) {
	refresh, err := GenerateRefreshToken()
	require.NoError(t, err)

	_, err = ParseAccessToken(refresh, testSecret)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestGenerateRefreshToken_OpaqueAndUnique(t *testing.T) {
	tok, err := GenerateRefreshToken()
	require.NoError(t, err)

	// URL-safe, no embedded structure
	require.False(t, strings.Contains(tok, "."))
	decoded, err := base64.RawURLEncoding.DecodeString(tok)
	require.NoError(t, err)
	require.Len(t, decoded, 32)

	tok2, err := GenerateRefreshToken()
	require.NoError(t, err)
	require.NotEqual(t, tok, tok2)
}
