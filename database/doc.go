// Package database provides a unified interface for connecting to SQL-backed
// text stores.
//
// The package supports PostgreSQL and SQLite and handles connection
// management, migrations, and schema validation.
//
// # Supported Backends
//
//   - PostgreSQL: Production-ready backend using pgx connection pool
//   - SQLite: Lightweight backend suitable for development and single-node deployments
//
// # Usage
//
//	cfg := database.Config{
//	    Type:   "sqlite",
//	    DSN:    "text2kv.db",
//	    Tables: text2kv.Tables{Objects: "text2kv_objects"},
//	}
//
//	db, err := database.Connect(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	if err := db.Validate(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	store := db.GetStore()
//
// # Subpackages
//
//   - database/postgres: PostgreSQL implementation using pgx
//   - database/sqlite: SQLite implementation using modernc.org/sqlite
package database
