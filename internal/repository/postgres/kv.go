package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// KVRepo implements repository.KeyValueStore on the kv_store table
type KVRepo struct {
	db *sql.DB
}

// NewKVRepo creates a new key-value repository
func NewKVRepo(db *sql.DB) *KVRepo {
	return &KVRepo{db: db}
}

// Get returns the stored value for the user's key
func (r *KVRepo) Get(ctx context.Context, userID int64, key string) (string, bool, error) {
	var value string
	query := `SELECT value FROM kv_store WHERE user_id = $1 AND key = $2`
	err := r.db.QueryRowContext(ctx, query, userID, key).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}

	return value, true, nil
}

// Set upserts the value for the user's key
func (r *KVRepo) Set(ctx context.Context, userID int64, key, value string) error {
	query := `
		INSERT INTO kv_store (user_id, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := r.db.ExecContext(ctx, query, userID, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes the user's key; deleting a missing key is not an error
func (r *KVRepo) Delete(ctx context.Context, userID int64, key string) error {
	query := `DELETE FROM kv_store WHERE user_id = $1 AND key = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
