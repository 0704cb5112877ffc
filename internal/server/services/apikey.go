package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dpetrovs/lockbox/internal/common"
	"github.com/dpetrovs/lockbox/internal/server/auth"
	"github.com/dpetrovs/lockbox/internal/server/models"
	"github.com/dpetrovs/lockbox/internal/server/repositories/repomanager"
)

// CreatedApiKey is returned once, at creation. Secret is the only time the
// raw key material leaves the server; afterwards only its hash exists.
type CreatedApiKey struct {
	ID        string `json:"id"`
	KeyPrefix string `json:"key_prefix"`
	Secret    string `json:"secret"`
}

// ApiKeyDTO is the listable shape of an API key. It never carries the
// secret or its hash.
type ApiKeyDTO struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	KeyPrefix string     `json:"key_prefix"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ApiKeyService manages secondary API-key credentials. Keys use the same
// hashing discipline as account passwords.
type ApiKeyService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewApiKeyService constructs an ApiKeyService.
func NewApiKeyService(db *sql.DB, m repomanager.RepositoryManager) *ApiKeyService {
	return &ApiKeyService{db: db, repomanager: m}
}

// CreateApiKey mints a high-entropy secret, stores its bcrypt hash, and
// returns the raw secret exactly once.
func (s *ApiKeyService) CreateApiKey(ctx context.Context, userID, name string) (*CreatedApiKey, error) {
	if strings.TrimSpace(name) == "" {
		return nil, common.ErrorValidation
	}

	keyPrefix := fmt.Sprintf("ak_%s", strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	secret, err := common.MakeRandString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}
	secretHash, err := auth.HashSecret(secret)
	if err != nil {
		return nil, common.ErrorInternal
	}

	created, err := s.repomanager.ApiKeys(s.db).Create(ctx, &models.ApiKey{
		ID:         uuid.NewString(),
		UserID:     userID,
		Name:       name,
		KeyPrefix:  keyPrefix,
		SecretHash: secretHash,
	})
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &CreatedApiKey{ID: created.ID, KeyPrefix: created.KeyPrefix, Secret: secret}, nil
}

// ListApiKeys returns the caller's keys without any secret material.
func (s *ApiKeyService) ListApiKeys(ctx context.Context, userID string) ([]ApiKeyDTO, error) {
	keys, err := s.repomanager.ApiKeys(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	out := make([]ApiKeyDTO, 0, len(keys))
	for _, k := range keys {
		out = append(out, ApiKeyDTO{
			ID:        k.ID,
			Name:      k.Name,
			KeyPrefix: k.KeyPrefix,
			ExpiresAt: k.ExpiresAt,
			CreatedAt: k.CreatedAt,
		})
	}
	return out, nil
}

// DeleteApiKey removes a key owned by userID. Deleting an absent or
// already-deleted key succeeds; deleting another user's key is refused.
func (s *ApiKeyService) DeleteApiKey(ctx context.Context, userID, keyID string) error {
	repo := s.repomanager.ApiKeys(s.db)
	key, err := repo.GetByID(ctx, keyID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return common.ErrorInternal
	}
	if key.UserID != userID {
		return common.ErrorUnauthorized
	}
	if err := repo.Delete(ctx, keyID); err != nil {
		return common.ErrorInternal
	}
	return nil
}

// VerifyApiKey checks a presented secret against a stored key, honouring
// expiry. Used by callers that accept API keys as credentials.
func (s *ApiKeyService) VerifyApiKey(ctx context.Context, keyID, secret string) (string, error) {
	key, err := s.repomanager.ApiKeys(s.db).GetByID(ctx, keyID)
	if err != nil {
		return "", common.ErrorUnauthorized
	}
	if key.ExpiresAt != nil && !time.Now().Before(*key.ExpiresAt) {
		return "", common.ErrorUnauthorized
	}
	if !auth.VerifySecret(secret, key.SecretHash) {
		return "", common.ErrorUnauthorized
	}
	return key.UserID, nil
}
