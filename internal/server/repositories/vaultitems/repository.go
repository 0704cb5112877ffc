// Package vaultitems declares the repository contract for vault items.
package vaultitems

import (
	"context"

	"github.com/dpetrovs/lockbox/internal/server/models"
)

// Repository defines CRUD operations for vault items. CipherText is stored
// as received; the server never decrypts it.
type Repository interface {
	Create(ctx context.Context, item *models.VaultItem) (*models.VaultItem, error)
	GetByID(ctx context.Context, id string) (*models.VaultItem, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*models.VaultItem, error)

	// Delete removes an item by id. Deleting an absent item is not an error.
	Delete(ctx context.Context, id string) error
}
