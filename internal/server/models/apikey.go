package models

import "time"

// ApiKey is a secondary credential. SecretHash is the bcrypt hash of a
// secret revealed to the caller exactly once, at creation. KeyPrefix is
// public and displayable.
type ApiKey struct {
	ID         string
	UserID     string
	Name       string
	KeyPrefix  string
	SecretHash string
	ExpiresAt  *time.Time
	CreatedAt  time.Time
}
