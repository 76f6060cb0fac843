// Package sqlite implements text2kv.Store using SQLite
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sagarc03/text2kv"
)

type store struct {
	db        *sql.DB
	tableName string
}

// Get reads the row for name. SQLite reads are always current, so the
// freshness hint is ignored.
func (s *store) Get(ctx context.Context, name string, _ time.Duration) (string, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE name = ?`, quoteIdentifier(s.tableName)) //nolint:gosec // G201: table name is validated

	var value string
	err := s.db.QueryRowContext(ctx, query, name).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", text2kv.ErrNotFound
		}
		return "", fmt.Errorf("get: %w", err)
	}

	return value, nil
}

func (s *store) Put(ctx context.Context, name, value string) error {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`INSERT INTO %s (name, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		quoteIdentifier(s.tableName))

	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx, query, name, value, now); err != nil {
		return fmt.Errorf("put: %w", err)
	}

	return nil
}
