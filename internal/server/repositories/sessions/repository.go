// Package sessions declares the server-side repository contract for
// refresh-token sessions in persistent storage.
package sessions

import (
	"context"
	"time"

	"github.com/dpetrovs/lockbox/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking
// refresh-token sessions.
type Repository interface {
	// Create stores a new session binding token to userID until expiresAt.
	Create(ctx context.Context, userID string, token string, expiresAt time.Time) error

	// Find looks up a session by its opaque token string and returns its
	// metadata. Returns common.ErrorNotFound when the token is absent.
	// Expiry is not checked here; callers compare ExpiresAt against their
	// own clock.
	Find(ctx context.Context, token string) (*models.Session, error)

	// Revoke removes a session by its token string. It returns
	// common.ErrorNotFound when no session was removed, which lets a
	// rotation caller detect that a concurrent racer already consumed the
	// token.
	Revoke(ctx context.Context, token string) error

	// RevokeAll removes every session owned by userID. Revoking a user with
	// no sessions is not an error.
	RevokeAll(ctx context.Context, userID string) error
}
