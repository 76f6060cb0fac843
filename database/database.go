package database

import (
	"context"
	"fmt"

	"github.com/sagarc03/text2kv"
	"github.com/sagarc03/text2kv/database/postgres"
	"github.com/sagarc03/text2kv/database/sqlite"
)

// Config holds the configuration for connecting to a SQL-backed store.
type Config struct {
	// Type specifies the database type: "sqlite" or "postgres"
	Type string `mapstructure:"type"`
	// DSN is the data source name (connection string)
	DSN string `mapstructure:"dsn" validate:"required"`
	// Tables holds the configurable table names
	Tables text2kv.Tables `mapstructure:"tables"`
	// AutoMigrate creates missing tables on serve
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// Database is a connected SQL backend.
type Database interface {
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	Validate(ctx context.Context) error
	GetStore() text2kv.Store
	Close() error
}

// Connect opens the configured backend. It does not migrate or validate;
// callers decide whether to Migrate before Validate.
func Connect(ctx context.Context, cfg Config) (Database, error) {
	if err := cfg.Tables.Validate(); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	switch cfg.Type {
	case "sqlite":
		db, err := sqlite.Connect(ctx, cfg.DSN, cfg.Tables)
		if err != nil {
			return nil, err
		}
		return db, nil
	case "postgres":
		db, err := postgres.Connect(ctx, cfg.DSN, cfg.Tables)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
}
