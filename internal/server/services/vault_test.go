package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dpetrovs/lockbox/internal/common"
	"github.com/dpetrovs/lockbox/internal/server/models"
	"github.com/dpetrovs/lockbox/internal/server/repositories/repomanager"
)

func newVaultService(t *testing.T) *VaultService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	t.Cleanup(func() { db.Close() })
	return NewVaultService(db, repomanager.NewInMemoryRepositoryManager())
}

func TestCreateTenant(t *testing.T) {
	s := newVaultService(t)
	ctx := context.Background()

	tenant, err := s.CreateTenant(ctx, "u1", "acme")
	if err != nil {
		t.Fatalf("CreateTenant: %v", err)
	}
	if tenant.Type != models.TenantOrganization || tenant.Name != "acme" {
		t.Fatalf("tenant: %+v", tenant)
	}

	if _, err := s.CreateTenant(ctx, "u1", " "); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("blank name: want ErrorValidation, got %v", err)
	}

	list, err := s.ListTenants(ctx, "u1")
	if err != nil || len(list) != 1 || list[0].ID != tenant.ID {
		t.Fatalf("ListTenants: %+v err=%v", list, err)
	}
	if other, _ := s.ListTenants(ctx, "u2"); len(other) != 0 {
		t.Fatalf("tenant visible to another user: %+v", other)
	}
}

func TestVaultItemCRUD(t *testing.T) {
	s := newVaultService(t)
	ctx := context.Background()

	tenant, err := s.CreateTenant(ctx, "u1", "acme")
	if err != nil {
		t.Fatalf("CreateTenant: %v", err)
	}

	item, err := s.CreateItem(ctx, "u1", tenant.ID, models.VaultItemCredential, "c1phert3xt", `{"label":"prod db"}`)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.TenantID != tenant.ID || item.CipherText != "c1phert3xt" {
		t.Fatalf("item: %+v", item)
	}

	got, err := s.GetItem(ctx, "u1", tenant.ID, item.ID)
	if err != nil || got.ID != item.ID {
		t.Fatalf("GetItem: %+v err=%v", got, err)
	}

	list, err := s.ListItems(ctx, "u1", tenant.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListItems: %+v err=%v", list, err)
	}

	if err := s.DeleteItem(ctx, "u1", tenant.ID, item.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	// repeated delete is a no-op
	if err := s.DeleteItem(ctx, "u1", tenant.ID, item.ID); err != nil {
		t.Fatalf("repeated DeleteItem: %v", err)
	}
	if _, err := s.GetItem(ctx, "u1", tenant.ID, item.ID); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("deleted item: want ErrorNotFound, got %v", err)
	}
}

func TestCreateItem_Validation(t *testing.T) {
	s := newVaultService(t)
	ctx := context.Background()

	tenant, err := s.CreateTenant(ctx, "u1", "acme")
	if err != nil {
		t.Fatalf("CreateTenant: %v", err)
	}

	if _, err := s.CreateItem(ctx, "u1", tenant.ID, "bogus", "ct", ""); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("bad type: want ErrorValidation, got %v", err)
	}
	if _, err := s.CreateItem(ctx, "u1", tenant.ID, models.VaultItemNote, "", ""); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("empty ciphertext: want ErrorValidation, got %v", err)
	}
}

func TestVault_TenantAccess(t *testing.T) {
	s := newVaultService(t)
	ctx := context.Background()

	tenant, err := s.CreateTenant(ctx, "owner", "acme")
	if err != nil {
		t.Fatalf("CreateTenant: %v", err)
	}
	item, err := s.CreateItem(ctx, "owner", tenant.ID, models.VaultItemNote, "ct", "")
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	// a stranger cannot touch the tenant at all
	if _, err := s.ListItems(ctx, "stranger", tenant.ID); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("stranger list: want ErrorUnauthorized, got %v", err)
	}
	if _, err := s.GetItem(ctx, "stranger", tenant.ID, item.ID); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("stranger get: want ErrorUnauthorized, got %v", err)
	}
	if err := s.DeleteItem(ctx, "stranger", tenant.ID, item.ID); !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("stranger delete: want ErrorUnauthorized, got %v", err)
	}

	// unknown tenant id reads as not found, not as unauthorized
	if _, err := s.ListItems(ctx, "owner", "missing"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("missing tenant: want ErrorNotFound, got %v", err)
	}

	// an item cannot be read through a different tenant
	other, err := s.CreateTenant(ctx, "owner", "other")
	if err != nil {
		t.Fatalf("CreateTenant other: %v", err)
	}
	if _, err := s.GetItem(ctx, "owner", other.ID, item.ID); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("cross-tenant get: want ErrorNotFound, got %v", err)
	}
}
