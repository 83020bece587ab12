package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return clock }

	t.Run("GetMissing", func(t *testing.T) {
		_, err := repo.Get(ctx, "app", "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("PutAndGet", func(t *testing.T) {
		require.NoError(t, repo.Put(ctx, "app", "user:1", json.RawMessage(`{"a":1}`)))

		e, err := repo.Get(ctx, "app", "user:1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":1}`, string(e.Value))
		assert.Equal(t, clock, e.CreatedAt)
		assert.Equal(t, clock, e.UpdatedAt)
	})

	t.Run("OverwriteKeepsCreatedAt", func(t *testing.T) {
		clock = clock.Add(time.Hour)
		require.NoError(t, repo.Put(ctx, "app", "user:1", json.RawMessage(`2`)))

		e, err := repo.Get(ctx, "app", "user:1")
		require.NoError(t, err)
		assert.Equal(t, "2", string(e.Value))
		assert.True(t, e.UpdatedAt.After(e.CreatedAt))
	})

	t.Run("ValueIsCopied", func(t *testing.T) {
		buf := json.RawMessage(`"abc"`)
		require.NoError(t, repo.Put(ctx, "app", "copy", buf))
		buf[1] = 'X'

		e, err := repo.Get(ctx, "app", "copy")
		require.NoError(t, err)
		assert.Equal(t, `"abc"`, string(e.Value))
	})

	t.Run("ListPrefix", func(t *testing.T) {
		require.NoError(t, repo.Put(ctx, "app", "user:2", json.RawMessage(`1`)))
		require.NoError(t, repo.Put(ctx, "app", "order:1", json.RawMessage(`1`)))

		all, err := repo.List(ctx, "app", "")
		require.NoError(t, err)
		keys := make([]string, 0, len(all))
		for _, e := range all {
			keys = append(keys, e.Key)
		}
		assert.Equal(t, []string{"copy", "order:1", "user:1", "user:2"}, keys)

		users, err := repo.List(ctx, "app", "user:")
		require.NoError(t, err)
		assert.Len(t, users, 2)

		none, err := repo.List(ctx, "other", "")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("Namespaces", func(t *testing.T) {
		require.NoError(t, repo.Put(ctx, "cache", "k", json.RawMessage(`1`)))

		namespaces, err := repo.Namespaces(ctx)
		require.NoError(t, err)
		require.Len(t, namespaces, 2)
		assert.Equal(t, "app", namespaces[0].Name)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), namespaces[0].CreatedAt)
		assert.Equal(t, "cache", namespaces[1].Name)
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "cache", "k"))
		require.NoError(t, repo.Delete(ctx, "cache", "k"))
		require.NoError(t, repo.Delete(ctx, "ghost", "k"))

		_, err := repo.Get(ctx, "cache", "k")
		assert.ErrorIs(t, err, ErrNotFound)

		namespaces, err := repo.Namespaces(ctx)
		require.NoError(t, err)
		assert.Len(t, namespaces, 1)
	})
}
