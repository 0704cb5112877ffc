package tenants

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
	mu      sync.Mutex
	tenants map[string]*models.Tenant // keyed by id
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{tenants: make(map[string]*models.Tenant)}
}

func (r *InMemoryRepository) Create(ctx context.Context, tenant *models.Tenant) (*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *tenant
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	r.tenants[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tenants[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *t
	return &out, nil
}

func (r *InMemoryRepository) ListByUser(ctx context.Context, userID string) ([]*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Tenant
	for _, t := range r.tenants {
		if t.CreatedBy == userID {
			c := *t
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tenants, id)
	return nil
}
