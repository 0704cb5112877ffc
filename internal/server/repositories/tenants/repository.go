// Package tenants declares the repository contract for tenants.
package tenants

import (
	"context"

	"github.com/dpetrovs/lockbox/internal/server/models"
)

// Repository defines CRUD operations for tenants.
type Repository interface {
	Create(ctx context.Context, tenant *models.Tenant) (*models.Tenant, error)
	GetByID(ctx context.Context, id string) (*models.Tenant, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Tenant, error)

	// Delete removes a tenant by id. Deleting an absent tenant is not an error.
	Delete(ctx context.Context, id string) error
}
