package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/velahq/vela/internal/core"
)

type PreferencesRepo struct {
	db *sql.DB
}

func NewPreferencesRepo(db *sql.DB) *PreferencesRepo {
	return &PreferencesRepo{db: db}
}

func (r *PreferencesRepo) Set(ctx context.Context, key string, value json.RawMessage) error {
	query := `INSERT INTO preferences (key, value)
	          VALUES (?, ?)
	          ON CONFLICT(key) DO UPDATE SET
	              value = excluded.value,
	              updated_at = CURRENT_TIMESTAMP`

	if _, err := r.db.ExecContext(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("failed to set preference: %w", err)
	}
	return nil
}

func (r *PreferencesRepo) Get(ctx context.Context, key string) (core.Preference, error) {
	query := `SELECT key, value, updated_at FROM preferences WHERE key = ?`

	var pref core.Preference
	var value string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&pref.Key, &value, &pref.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Preference{}, fmt.Errorf("preference %q: %w", key, core.ErrNotFound)
	}
	if err != nil {
		return core.Preference{}, fmt.Errorf("failed to query preference: %w", err)
	}

	pref.Value = []byte(value)
	return pref, nil
}
