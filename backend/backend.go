// Package backend builds the text2kv.Store selected by configuration.
package backend

import (
	"context"
	"fmt"
	"os"

	"github.com/sagarc03/text2kv"
	"github.com/sagarc03/text2kv/database"
	"github.com/sagarc03/text2kv/filesystem"
	"github.com/sagarc03/text2kv/kvdbstore"
	"github.com/sagarc03/text2kv/readcache"
	"github.com/sagarc03/text2kv/s3store"
)

// Store types accepted by Open.
const (
	TypeMemory     = "memory"
	TypeKVDB       = "kvdb"
	TypeFilesystem = "filesystem"
	TypeSQLite     = "sqlite"
	TypePostgres   = "postgres"
	TypeS3         = "s3"
)

// Types lists every supported store type.
var Types = []string{TypeMemory, TypeKVDB, TypeFilesystem, TypeSQLite, TypePostgres, TypeS3}

// CacheConfig controls the read cache placed in front of the store.
type CacheConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	MaxEntries int  `mapstructure:"max_entries" validate:"min=0"`
}

// Config carries the settings of every backend; Type picks which one is used.
type Config struct {
	Type        string
	Cache       CacheConfig
	Database    database.Config
	StoragePath string
	S3          s3store.Config
	KVDB        kvdbstore.Config
}

// Open builds the configured store. The returned cleanup releases any
// connections or handles and must be called once the store is no longer used.
func Open(ctx context.Context, cfg Config) (text2kv.Store, func(), error) {
	store, cleanup, err := open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Cache.Enabled {
		store = readcache.New(store, cfg.Cache.MaxEntries)
	}

	return store, cleanup, nil
}

func open(ctx context.Context, cfg Config) (text2kv.Store, func(), error) {
	noop := func() {}

	switch cfg.Type {
	case TypeMemory:
		store, err := kvdbstore.Open(kvdbstore.Config{Domain: cfg.KVDB.Domain})
		if err != nil {
			return nil, nil, fmt.Errorf("open memory store: %w", err)
		}
		return store, noop, nil

	case TypeKVDB:
		store, err := kvdbstore.Open(cfg.KVDB)
		if err != nil {
			return nil, nil, fmt.Errorf("open kvdb store: %w", err)
		}
		return store, noop, nil

	case TypeFilesystem:
		return openFilesystem(cfg.StoragePath)

	case TypeSQLite, TypePostgres:
		dbCfg := cfg.Database
		dbCfg.Type = cfg.Type
		return openDatabase(ctx, dbCfg)

	case TypeS3:
		store, err := s3store.New(ctx, cfg.S3)
		if err != nil {
			return nil, nil, fmt.Errorf("open s3 store: %w", err)
		}
		return store, noop, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store type: %s", cfg.Type)
	}
}

func openFilesystem(path string) (text2kv.Store, func(), error) {
	if path == "" {
		return nil, nil, fmt.Errorf("open filesystem store: storage path cannot be empty")
	}

	if err := os.MkdirAll(path, 0o750); err != nil {
		return nil, nil, fmt.Errorf("open filesystem store: %w", err)
	}

	root, err := os.OpenRoot(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open filesystem store: %w", err)
	}

	return filesystem.NewFileStorage(root), func() { _ = root.Close() }, nil
}

func openDatabase(ctx context.Context, cfg database.Config) (text2kv.Store, func(), error) {
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s store: %w", cfg.Type, err)
	}

	if err := db.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping %s: %w", cfg.Type, err)
	}

	if cfg.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrate %s: %w", cfg.Type, err)
		}
	}

	if err := db.Validate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("validate %s schema: %w", cfg.Type, err)
	}

	return db.GetStore(), func() { _ = db.Close() }, nil
}
