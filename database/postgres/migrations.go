package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sagarc03/text2kv"
)

func createObjectsTable(ctx context.Context, pool *pgxpool.Pool, tableName string) error {
	sql := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			name TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`, pgx.Identifier{tableName}.Sanitize())

	_, err := pool.Exec(ctx, sql)
	if err != nil {
		return fmt.Errorf("create objects table: %w", err)
	}
	return nil
}

// Migrate creates every table in tables.
func Migrate(ctx context.Context, pool *pgxpool.Pool, tables text2kv.Tables) error {
	if err := createObjectsTable(ctx, pool, tables.Objects); err != nil {
		return fmt.Errorf("migrate up %s: %w", tables.Objects, err)
	}
	return nil
}

// DropTables drops every table in tables.
func DropTables(ctx context.Context, pool *pgxpool.Pool, tables text2kv.Tables) error {
	sql := fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", pgx.Identifier{tables.Objects}.Sanitize())
	if _, err := pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("migrate down %s: %w", tables.Objects, err)
	}
	return nil
}
