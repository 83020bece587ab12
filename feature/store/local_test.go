package store

import (
	"context"
	"encoding/json"
	"testing"

	"kv-storage/core/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocal(t *testing.T) {
	ctx := context.Background()
	local := NewFeature(NewMemoryRepository(), zap.NewNop()).Store()

	res, err := local.Put(ctx, "app", "k", map[string]int{"n": 1})
	require.NoError(t, err)
	assert.Equal(t, "Value stored successfully", res.Message)

	got, err := local.Get(ctx, "app", "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":1}`, string(got.Value))

	_, err = local.Put(ctx, "app", "raw", json.RawMessage(`[1,2]`))
	require.NoError(t, err)

	list, err := local.List(ctx, "app", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"k", "raw"}, list.Keys)
	assert.NotEmpty(t, list.Entries[0].CreatedAt)

	require.NoError(t, local.Delete(ctx, "app", "k"))
	_, err = local.Get(ctx, "app", "k")
	assert.True(t, kv.IsNotFound(err))
	assert.ErrorIs(t, err, kv.ErrHTTP)

	_, err = local.Get(ctx, "App", "k")
	assert.Equal(t, 400, kv.StatusCode(err))

	_, err = local.Put(ctx, "app", "k", make(chan int))
	assert.ErrorIs(t, err, kv.ErrSerialization)
}
