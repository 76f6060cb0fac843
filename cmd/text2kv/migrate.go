package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sagarc03/text2kv/backend"
	"github.com/sagarc03/text2kv/config"
	"github.com/sagarc03/text2kv/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the objects table for SQL stores",
	Long: `Create the objects table for the sqlite or postgres store and validate its
schema. Running it again is safe.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	if cfg.Store.Type != backend.TypeSQLite && cfg.Store.Type != backend.TypePostgres {
		return fmt.Errorf("migrate: store type %q has no schema", cfg.Store.Type)
	}

	ctx := cmd.Context()
	dbCfg := cfg.Database
	dbCfg.Type = cfg.Store.Type

	db, err := database.Connect(ctx, dbCfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	if err := db.Validate(ctx); err != nil {
		return fmt.Errorf("validate database schema: %w", err)
	}

	slog.Info("database migration complete", "type", dbCfg.Type, "table", dbCfg.Tables.Objects)
	return nil
}
