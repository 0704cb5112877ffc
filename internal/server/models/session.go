package models

import "time"

// Session binds a live refresh token to its owning user. A session is valid
// only while it is present in the store and unexpired; the token string
// itself carries no structure.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}
