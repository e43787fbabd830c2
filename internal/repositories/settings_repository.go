// Package repositories provides data access for the media and settings tables
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
)

// settingsRepository persists generic key/value settings rows
type settingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *sql.DB) *settingsRepository {
	return &settingsRepository{
		db: db,
	}
}

// GetByPrefix returns all settings whose name starts with prefix
func (r *settingsRepository) GetByPrefix(ctx context.Context, prefix string) (map[string]string, error) {
	query := `
		SELECT name, value
		FROM settings
		WHERE name LIKE ?
	`

	rows, err := r.db.QueryContext(ctx, query, prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	return settings, nil
}

// Upsert writes the given settings, inserting or overwriting each key.
// Keys are written in sorted order so the statement sequence is deterministic.
func (r *settingsRepository) Upsert(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	query := `
		INSERT INTO settings (name, value)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE value = VALUES(value)
	`

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := r.db.ExecContext(ctx, query, name, values[name]); err != nil {
			return fmt.Errorf("failed to upsert setting %q: %w", name, err)
		}
	}

	return nil
}
