package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"journal-transporter/transporter/internal/models/entities"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type KeysRepo struct {
	db *sqlx.DB
}

func NewApiKeysRepo(db *sqlx.DB) *KeysRepo {
	return &KeysRepo{db}
}

// GetStatus returns the key row, or nil when the key does not exist.
func (r *KeysRepo) GetStatus(ctx context.Context, key string) (*entities.ApiKey, error) {
	var keyRes entities.ApiKey

	err := r.db.QueryRowxContext(ctx, r.db.Rebind(`SELECT id, status FROM api_keys WHERE id = ?`), key).StructScan(&keyRes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch api key: %w", err)
	}

	return &keyRes, nil
}

// Create issues a new active key.
func (r *KeysRepo) Create(ctx context.Context, label string) (string, error) {
	key := uuid.New().String()

	_, err := r.db.ExecContext(ctx,
		r.db.Rebind(`INSERT INTO api_keys (id, label, status, created_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)`),
		key, label, true)
	if err != nil {
		return "", fmt.Errorf("failed to insert api key: %w", err)
	}
	return key, nil
}

// Revoke deactivates a key.
func (r *KeysRepo) Revoke(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE api_keys SET status = ? WHERE id = ?`), false, key)
	if err != nil {
		return fmt.Errorf("failed to revoke api key: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("api key not found: %s", key)
	}
	return nil
}
