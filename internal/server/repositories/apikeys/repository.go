// Package apikeys declares the repository contract for API keys.
package apikeys

import (
	"context"

	"github.com/dpetrovs/lockbox/internal/server/models"
)

// Repository defines CRUD operations for API keys. Only the secret hash is
// ever persisted.
type Repository interface {
	Create(ctx context.Context, key *models.ApiKey) (*models.ApiKey, error)
	ListByUser(ctx context.Context, userID string) ([]*models.ApiKey, error)
	GetByID(ctx context.Context, id string) (*models.ApiKey, error)

	// Delete removes a key by id. Deleting an absent key is not an error.
	Delete(ctx context.Context, id string) error
}
