package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/sagarc03/text2kv"
	"github.com/sagarc03/text2kv/database/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func TestDatabase_Migrate(t *testing.T) {
	ctx := context.Background()
	tables := text2kv.Tables{Objects: "objects"}

	db, err := sqlite.Connect(ctx, ":memory:", tables)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	assert.NoError(t, db.Ping(ctx))
	assert.Error(t, db.Validate(ctx), "validate before migrate")

	require.NoError(t, db.Migrate(ctx))
	require.NoError(t, db.Migrate(ctx), "migrate is idempotent")
	assert.NoError(t, db.Validate(ctx))
}

func TestValidateSchema(t *testing.T) {
	ctx := context.Background()

	t.Run("missing columns", func(t *testing.T) {
		conn, err := sql.Open("sqlite", ":memory:")
		require.NoError(t, err)
		conn.SetMaxOpenConns(1)
		defer func() { _ = conn.Close() }()

		_, err = conn.ExecContext(ctx, `CREATE TABLE "objects" (name TEXT NOT NULL PRIMARY KEY)`)
		require.NoError(t, err)

		err = sqlite.ValidateSchema(ctx, conn, text2kv.Tables{Objects: "objects"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing columns")
	})

	t.Run("wrong column type", func(t *testing.T) {
		conn, err := sql.Open("sqlite", ":memory:")
		require.NoError(t, err)
		conn.SetMaxOpenConns(1)
		defer func() { _ = conn.Close() }()

		_, err = conn.ExecContext(ctx, `CREATE TABLE "objects" (
			name TEXT NOT NULL PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at TEXT NOT NULL
		)`)
		require.NoError(t, err)

		err = sqlite.ValidateSchema(ctx, conn, text2kv.Tables{Objects: "objects"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "value: expected text, got blob")
	})

	t.Run("invalid table name", func(t *testing.T) {
		conn, err := sql.Open("sqlite", ":memory:")
		require.NoError(t, err)
		defer func() { _ = conn.Close() }()

		err = sqlite.ValidateSchema(ctx, conn, text2kv.Tables{Objects: "bad;name"})
		assert.ErrorContains(t, err, "invalid table name")
	})
}

func TestDropTables(t *testing.T) {
	ctx := context.Background()
	conn, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	defer func() { _ = conn.Close() }()

	tables := text2kv.Tables{Objects: "objects"}
	require.NoError(t, sqlite.Migrate(ctx, conn, tables))
	require.NoError(t, sqlite.ValidateSchema(ctx, conn, tables))

	require.NoError(t, sqlite.DropTables(ctx, conn, tables))
	assert.ErrorContains(t, sqlite.ValidateSchema(ctx, conn, tables), "does not exist")
}

func TestDatabase_Close(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Connect(ctx, ":memory:", text2kv.Tables{Objects: "objects"})
	require.NoError(t, err)

	require.NoError(t, db.Close())
	assert.Error(t, db.Ping(ctx), "ping after close")
}
