package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dpetrovs/lockbox/internal/common"
	"github.com/dpetrovs/lockbox/internal/server/models"
	"github.com/dpetrovs/lockbox/internal/server/repositories/repomanager"
)

// TenantDTO is the externally visible shape of a tenant.
type TenantDTO struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Type      models.TenantType `json:"type"`
	CreatedAt time.Time         `json:"created_at"`
}

// VaultItemDTO is the externally visible shape of a vault item.
type VaultItemDTO struct {
	ID         string               `json:"id"`
	TenantID   string               `json:"tenant_id"`
	Type       models.VaultItemType `json:"type"`
	CipherText string               `json:"cipher_text"`
	Metadata   string               `json:"metadata,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}

// VaultService manages tenants and the items stored inside them. Item
// payloads are opaque ciphertext; nothing here decrypts.
type VaultService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewVaultService constructs a VaultService.
func NewVaultService(db *sql.DB, m repomanager.RepositoryManager) *VaultService {
	return &VaultService{db: db, repomanager: m}
}

// CreateTenant creates an organization tenant owned by userID.
func (s *VaultService) CreateTenant(ctx context.Context, userID, name string) (*TenantDTO, error) {
	if strings.TrimSpace(name) == "" {
		return nil, common.ErrorValidation
	}
	tenant, err := s.repomanager.Tenants(s.db).Create(ctx, &models.Tenant{
		ID:        uuid.NewString(),
		Name:      name,
		Type:      models.TenantOrganization,
		CreatedBy: userID,
	})
	if err != nil {
		return nil, common.ErrorInternal
	}
	return tenantDTO(tenant), nil
}

// ListTenants returns the tenants owned by userID, the individual one
// included.
func (s *VaultService) ListTenants(ctx context.Context, userID string) ([]TenantDTO, error) {
	tenants, err := s.repomanager.Tenants(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	out := make([]TenantDTO, 0, len(tenants))
	for _, t := range tenants {
		out = append(out, *tenantDTO(t))
	}
	return out, nil
}

// CreateItem stores a new vault item in the given tenant. The tenant must
// exist and be owned by userID.
func (s *VaultService) CreateItem(ctx context.Context, userID, tenantID string, itemType models.VaultItemType, cipherText, metadata string) (*VaultItemDTO, error) {
	switch itemType {
	case models.VaultItemCredential, models.VaultItemDocument, models.VaultItemNote, models.VaultItemMedia:
	default:
		return nil, common.ErrorValidation
	}
	if cipherText == "" {
		return nil, common.ErrorValidation
	}

	if err := s.checkTenantAccess(ctx, userID, tenantID); err != nil {
		return nil, err
	}

	item, err := s.repomanager.VaultItems(s.db).Create(ctx, &models.VaultItem{
		ID:         uuid.NewString(),
		TenantID:   tenantID,
		Type:       itemType,
		CipherText: cipherText,
		Metadata:   metadata,
		CreatedBy:  userID,
	})
	if err != nil {
		return nil, common.ErrorInternal
	}
	return itemDTO(item), nil
}

// ListItems returns all items of a tenant owned by userID.
func (s *VaultService) ListItems(ctx context.Context, userID, tenantID string) ([]VaultItemDTO, error) {
	if err := s.checkTenantAccess(ctx, userID, tenantID); err != nil {
		return nil, err
	}
	items, err := s.repomanager.VaultItems(s.db).ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	out := make([]VaultItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, *itemDTO(item))
	}
	return out, nil
}

// GetItem returns one item of a tenant owned by userID.
func (s *VaultService) GetItem(ctx context.Context, userID, tenantID, itemID string) (*VaultItemDTO, error) {
	if err := s.checkTenantAccess(ctx, userID, tenantID); err != nil {
		return nil, err
	}
	item, err := s.repomanager.VaultItems(s.db).GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	if item.TenantID != tenantID {
		return nil, common.ErrorNotFound
	}
	return itemDTO(item), nil
}

// DeleteItem removes one item. Deleting an absent item succeeds.
func (s *VaultService) DeleteItem(ctx context.Context, userID, tenantID, itemID string) error {
	if err := s.checkTenantAccess(ctx, userID, tenantID); err != nil {
		return err
	}
	item, err := s.repomanager.VaultItems(s.db).GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return common.ErrorInternal
	}
	if item.TenantID != tenantID {
		return nil
	}
	if err := s.repomanager.VaultItems(s.db).Delete(ctx, itemID); err != nil {
		return common.ErrorInternal
	}
	return nil
}

func (s *VaultService) checkTenantAccess(ctx context.Context, userID, tenantID string) error {
	tenant, err := s.repomanager.Tenants(s.db).GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	if tenant.CreatedBy != userID {
		return common.ErrorUnauthorized
	}
	return nil
}

func tenantDTO(t *models.Tenant) *TenantDTO {
	return &TenantDTO{ID: t.ID, Name: t.Name, Type: t.Type, CreatedAt: t.CreatedAt}
}

func itemDTO(i *models.VaultItem) *VaultItemDTO {
	return &VaultItemDTO{
		ID:         i.ID,
		TenantID:   i.TenantID,
		Type:       i.Type,
		CipherText: i.CipherText,
		Metadata:   i.Metadata,
		CreatedAt:  i.CreatedAt,
	}
}
