package apikeys

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
	mu   sync.Mutex
	keys map[string]*models.ApiKey // keyed by id
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{keys: make(map[string]*models.ApiKey)}
}

func (r *InMemoryRepository) Create(ctx context.Context, key *models.ApiKey) (*models.ApiKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *key
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	r.keys[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *InMemoryRepository) ListByUser(ctx context.Context, userID string) ([]*models.ApiKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var keys []*models.ApiKey
	for _, k := range r.keys {
		if k.UserID == userID {
			out := *k
			keys = append(keys, &out)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].CreatedAt.Before(keys[j].CreatedAt) })
	return keys, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.ApiKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k, ok := r.keys[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *k
	return &out, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.keys, id)
	return nil
}
