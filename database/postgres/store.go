// Package postgres implements text2kv.Store using PostgreSQL
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sagarc03/text2kv"
)

type store struct {
	pool      *pgxpool.Pool
	tableName string
}

// Get reads the row for name. Postgres reads are always current, so the
// freshness hint is ignored.
func (s *store) Get(ctx context.Context, name string, _ time.Duration) (string, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE name = $1`, pgx.Identifier{s.tableName}.Sanitize()) //nolint:gosec // G201: table name is validated

	var value string
	err := s.pool.QueryRow(ctx, query, name).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", text2kv.ErrNotFound
		}
		return "", fmt.Errorf("get: %w", err)
	}

	return value, nil
}

func (s *store) Put(ctx context.Context, name, value string) error {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`INSERT INTO %s (name, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		pgx.Identifier{s.tableName}.Sanitize())

	if _, err := s.pool.Exec(ctx, query, name, value); err != nil {
		return fmt.Errorf("put: %w", err)
	}

	return nil
}
