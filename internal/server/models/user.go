package models

import "time"

// SystemRole is the instance-wide role of a user account.
type SystemRole string

const (
	RoleAdmin  SystemRole = "admin"
	RoleMember SystemRole = "member"
)

// User is an identity record. PasswordHash holds the bcrypt hash of the
// client-supplied auth hash; the raw secret is never stored.
type User struct {
	ID                 string
	Username           string
	PasswordHash       string
	PasswordHint       string
	Role               SystemRole
	IndividualTenantID string
	CreatedAt          time.Time
}
