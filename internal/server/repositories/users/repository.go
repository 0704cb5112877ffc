// Package users declares the server-side repository contract for user
// accounts in persistent storage.
package users

import (
	"context"

	"github.com/dpetrovs/lockbox/internal/server/models"
)

// Repository defines operations for creating, retrieving, and deleting users.
type Repository interface {
	// CreateAtomic inserts a new user, electing models.RoleAdmin when the
	// store holds no users yet and models.RoleMember otherwise. The count
	// check and the insert are one atomic step: two concurrent first
	// registrations must not both become admin. Username uniqueness is
	// enforced at the store boundary; a duplicate returns
	// common.ErrorAlreadyExists.
	CreateAtomic(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUsername looks up a user by exact, case-sensitive username.
	// Returns common.ErrorNotFound when absent.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByID looks up a user by id. Returns common.ErrorNotFound when absent.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// Delete removes a user by id. Deleting an absent user is not an error.
	Delete(ctx context.Context, id string) error

	// Count returns the number of registered users.
	Count(ctx context.Context) (int64, error)
}
