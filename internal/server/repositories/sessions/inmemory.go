package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/dpetrovs/lockbox/internal/common"
	"github.com/dpetrovs/lockbox/internal/server/models"
)

// InMemoryRepository is a mutex-guarded reference implementation of
// Repository. Revoke keeps the same single-consumer semantics as the
// Postgres version: the first caller wins, later callers get
// common.ErrorNotFound.
type InMemoryRepository struct {
	mu       sync.Mutex
	sessions map[string]*models.Session // keyed by token
}

// NewInMemoryRepository constructs an empty in-memory session store.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{sessions: make(map[string]*models.Session)}
}

func (r *InMemoryRepository) Create(ctx context.Context, userID string, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[token] = &models.Session{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (r *InMemoryRepository) Find(ctx context.Context, token string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *s
	return &out, nil
}

func (r *InMemoryRepository) Revoke(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[token]; !ok {
		return common.ErrorNotFound
	}
	delete(r.sessions, token)
	return nil
}

func (r *InMemoryRepository) RevokeAll(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, token)
		}
	}
	return nil
}
