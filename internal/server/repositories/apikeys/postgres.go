package apikeys

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

func (r *PostgresRepository) Create(ctx context.Context, key *models.ApiKey) (*models.ApiKey, error) {
	query := `
		INSERT INTO api_keys (id, user_id, name, key_prefix, secret_hash, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		key.ID, key.UserID, key.Name, key.KeyPrefix, key.SecretHash, key.ExpiresAt).
		Scan(&key.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return key, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.ApiKey, error) {
	query := `
		SELECT id, user_id, name, key_prefix, secret_hash, expires_at, created_at
		FROM api_keys
		WHERE user_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var keys []*models.ApiKey
	for rows.Next() {
		key := &models.ApiKey{}
		if err := rows.Scan(&key.ID, &key.UserID, &key.Name, &key.KeyPrefix,
			&key.SecretHash, &key.ExpiresAt, &key.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return keys, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.ApiKey, error) {
	query := `
		SELECT id, user_id, name, key_prefix, secret_hash, expires_at, created_at
		FROM api_keys
		WHERE id = $1
	`
	key := &models.ApiKey{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&key.ID, &key.UserID, &key.Name,
		&key.KeyPrefix, &key.SecretHash, &key.ExpiresAt, &key.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return key, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM api_keys
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
