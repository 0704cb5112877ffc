package vaultitems

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dpetrovs/lockbox/internal/common"
	"github.com/dpetrovs/lockbox/internal/server/models"
)

// InMemoryRepository is a mutex-guarded reference implementation of Repository.
type InMemoryRepository struct {
	mu    sync.Mutex
	items map[string]*models.VaultItem // keyed by id
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{items: make(map[string]*models.VaultItem)}
}

func (r *InMemoryRepository) Create(ctx context.Context, item *models.VaultItem) (*models.VaultItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *item
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	r.items[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.VaultItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *item
	return &out, nil
}

func (r *InMemoryRepository) ListByTenant(ctx context.Context, tenantID string) ([]*models.VaultItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []*models.VaultItem
	for _, item := range r.items {
		if item.TenantID == tenantID {
			out := *item
			items = append(items, &out)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}
