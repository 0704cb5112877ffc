package users

import (
	"context"
	"sync"
	"time"

	"github.com/dpetrovs/lockbox/internal/common"
	"github.com/dpetrovs/lockbox/internal/server/models"
)

// InMemoryRepository is a mutex-guarded reference implementation of
// Repository. It mirrors the Postgres semantics, including the uniqueness
// guarantee under concurrent Create calls.
type InMemoryRepository struct {
	mu    sync.Mutex
	users map[string]*models.User // keyed by id
}

// NewInMemoryRepository constructs an empty in-memory user store.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[string]*models.User)}
}

// CreateAtomic inserts the user under the repository mutex, so the admin
// election and the uniqueness check cannot interleave with a concurrent
// registration.
func (r *InMemoryRepository) CreateAtomic(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, common.ErrorAlreadyExists
		}
	}
	user.Role = models.RoleMember
	if len(r.users) == 0 {
		user.Role = models.RoleAdmin
	}
	stored := *user
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	r.users[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *InMemoryRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *InMemoryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}
