package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/sagarc03/text2kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		store := setupTestStore(t)

		_, err := store.Get(ctx, "missing", time.Minute)
		assert.ErrorIs(t, err, text2kv.ErrNotFound)
	})

	t.Run("round trip", func(t *testing.T) {
		store := setupTestStore(t)

		require.NoError(t, store.Put(ctx, "notes", "你好 world"))

		value, err := store.Get(ctx, "notes", text2kv.Bypass)
		require.NoError(t, err)
		assert.Equal(t, "你好 world", value)
	})
}

func TestStore_Put(t *testing.T) {
	ctx := context.Background()

	t.Run("overwrite replaces value", func(t *testing.T) {
		store := setupTestStore(t)

		require.NoError(t, store.Put(ctx, "notes", "first"))
		require.NoError(t, store.Put(ctx, "notes", "second"))

		value, err := store.Get(ctx, "notes", text2kv.Bypass)
		require.NoError(t, err)
		assert.Equal(t, "second", value)
	})

	t.Run("empty value is stored", func(t *testing.T) {
		store := setupTestStore(t)

		require.NoError(t, store.Put(ctx, "blank", ""))

		value, err := store.Get(ctx, "blank", text2kv.Bypass)
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("canceled context", func(t *testing.T) {
		store := setupTestStore(t)
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		assert.ErrorIs(t, store.Put(canceled, "notes", "x"), context.Canceled)
	})
}
