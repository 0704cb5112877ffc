package auth

import "golang.org/x/crypto/bcrypt"

// HashSecret derives a salted, adaptive one-way hash of the given secret.
// The same primitive covers account credentials and API-key secrets.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifySecret reports whether presented matches the stored hash.
func VerifySecret(presented, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(presented)) == nil
}
