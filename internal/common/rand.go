package common

import (
	"crypto/rand"
	"encoding/base64"
)

// MakeRandString generates a URL-safe random string from size bytes of
// entropy. The result carries no embedded structure; its only meaning is as
// an opaque lookup key.
//
// It returns an error if the random number generator fails.
func MakeRandString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
