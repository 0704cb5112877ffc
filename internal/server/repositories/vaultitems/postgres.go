package vaultitems

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dpetrovs/lockbox/internal/common"
	"github.com/dpetrovs/lockbox/internal/dbx"
	"github.com/dpetrovs/lockbox/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, item *models.VaultItem) (*models.VaultItem, error) {
	query := `
		INSERT INTO vault_items (id, tenant_id, type, cipher_text, metadata, created_by)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')::jsonb, $6)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		item.ID, item.TenantID, item.Type, item.CipherText, item.Metadata, item.CreatedBy).
		Scan(&item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.VaultItem, error) {
	query := `
		SELECT id, tenant_id, type, cipher_text, COALESCE(metadata::text, ''), created_at, created_by
		FROM vault_items
		WHERE id = $1
	`
	item := &models.VaultItem{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.TenantID, &item.Type,
		&item.CipherText, &item.Metadata, &item.CreatedAt, &item.CreatedBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) ListByTenant(ctx context.Context, tenantID string) ([]*models.VaultItem, error) {
	query := `
		SELECT id, tenant_id, type, cipher_text, COALESCE(metadata::text, ''), created_at, created_by
		FROM vault_items
		WHERE tenant_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var items []*models.VaultItem
	for rows.Next() {
		item := &models.VaultItem{}
		if err := rows.Scan(&item.ID, &item.TenantID, &item.Type, &item.CipherText,
			&item.Metadata, &item.CreatedAt, &item.CreatedBy); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return items, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM vault_items
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
