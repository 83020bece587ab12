package backup

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"kv-storage/core/kv"
	kvmocks "kv-storage/core/kv/mocks"
	"kv-storage/core/reconcile"
	"kv-storage/core/storage"
	"kv-storage/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testBucket = "kv-backups"

var fixedNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func setupService(t *testing.T) (*Service, *kvmocks.Store, *mocks.Client) {
	t.Helper()
	store := new(kvmocks.Store)
	client := new(mocks.Client)
	svc := NewService(store, client, storageConfig(), zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc, store, client
}

func storageConfig() storage.Config {
	return storage.Config{
		Bucket:      testBucket,
		Prefix:      "/backups/",
		Concurrency: 4,
	}
}

// mockLive registers List and Get expectations for a live namespace.
func mockLive(store *kvmocks.Store, namespace string, values map[string]string) {
	keys := make([]string, 0, len(values))
	for k, v := range values {
		keys = append(keys, k)
		store.On("Get", mock.Anything, namespace, k).Return(&kv.GetResult{Value: json.RawMessage(v)}, nil)
	}
	store.On("List", mock.Anything, namespace, "").Return(&kv.ListResult{Keys: keys}, nil)
}

func snapshotBody(t *testing.T, entries map[string]string) io.ReadCloser {
	t.Helper()
	snap := Snapshot{Namespace: "app", CreatedAt: fixedNow, Entries: map[string]json.RawMessage{}}
	for k, v := range entries {
		snap.Entries[k] = json.RawMessage(v)
	}
	data, err := json.Marshal(snap)
	require.NoError(t, err)
	return io.NopCloser(strings.NewReader(string(data)))
}

func TestExport(t *testing.T) {
	svc, store, client := setupService(t)
	mockLive(store, "app", map[string]string{"a": `1`, "b": `{"x":true}`})

	var uploaded Snapshot
	client.On("BucketExists", mock.Anything, testBucket).Return(false, nil)
	client.On("MakeBucket", mock.Anything, testBucket, mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, testBucket, "backups/app/1704067200000.json", mock.Anything, mock.AnythingOfType("int64"), mock.Anything).
		Run(func(args mock.Arguments) {
			data, err := io.ReadAll(args.Get(3).(io.Reader))
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(data, &uploaded))
			assert.Equal(t, int64(len(data)), args.Get(4).(int64))
			assert.Equal(t, "application/json", args.Get(5).(minio.PutObjectOptions).ContentType)
		}).
		Return(minio.UploadInfo{}, nil)

	info, err := svc.Export(context.Background(), "app")
	require.NoError(t, err)
	assert.Equal(t, "backups/app/1704067200000.json", info.Object)
	assert.Equal(t, 2, info.Keys)
	assert.Equal(t, fixedNow, info.CreatedAt)

	assert.Equal(t, "app", uploaded.Namespace)
	assert.Len(t, uploaded.Entries, 2)
	assert.JSONEq(t, `{"x":true}`, string(uploaded.Entries["b"]))
	client.AssertExpectations(t)
}

func TestExport_SkipsVanishedKeys(t *testing.T) {
	svc, store, client := setupService(t)
	store.On("List", mock.Anything, "app", "").Return(&kv.ListResult{Keys: []string{"a", "gone"}}, nil)
	store.On("Get", mock.Anything, "app", "a").Return(&kv.GetResult{Value: json.RawMessage(`1`)}, nil)
	store.On("Get", mock.Anything, "app", "gone").Return(nil, &kv.HTTPError{StatusCode: 404})
	client.On("BucketExists", mock.Anything, testBucket).Return(true, nil)
	client.On("PutObject", mock.Anything, testBucket, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

	info, err := svc.Export(context.Background(), "app")
	require.NoError(t, err)
	assert.Equal(t, 1, info.Keys)
}

func TestExport_Errors(t *testing.T) {
	t.Run("ListFails", func(t *testing.T) {
		svc, store, _ := setupService(t)
		store.On("List", mock.Anything, "app", "").Return(nil, kv.ErrTransport)

		_, err := svc.Export(context.Background(), "app")
		assert.ErrorIs(t, err, kv.ErrTransport)
	})

	t.Run("GetFails", func(t *testing.T) {
		svc, store, _ := setupService(t)
		store.On("List", mock.Anything, "app", "").Return(&kv.ListResult{Keys: []string{"a"}}, nil)
		store.On("Get", mock.Anything, "app", "a").Return(nil, &kv.HTTPError{StatusCode: 500})

		_, err := svc.Export(context.Background(), "app")
		assert.ErrorIs(t, err, kv.ErrHTTP)
	})

	t.Run("UploadFails", func(t *testing.T) {
		svc, store, client := setupService(t)
		mockLive(store, "app", map[string]string{})
		client.On("BucketExists", mock.Anything, testBucket).Return(true, nil)
		client.On("PutObject", mock.Anything, testBucket, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, errors.New("disk full"))

		_, err := svc.Export(context.Background(), "app")
		assert.ErrorContains(t, err, "disk full")
	})

	t.Run("InvalidNamespace", func(t *testing.T) {
		svc, _, _ := setupService(t)
		_, err := svc.Export(context.Background(), "a/b")
		assert.ErrorIs(t, err, kv.ErrValidation)
	})
}

func TestList(t *testing.T) {
	svc, _, client := setupService(t)
	client.On("ListObjects", mock.Anything, testBucket, minio.ListObjectsOptions{Prefix: "backups/app/", Recursive: true}).
		Return(mocks.ObjectChannel(
			minio.ObjectInfo{Key: "backups/app/1000.json", Size: 10},
			minio.ObjectInfo{Key: "backups/app/notes.txt"},
			minio.ObjectInfo{Key: "backups/app/3000.json", Size: 30},
		))

	infos, err := svc.List(context.Background(), "app")
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "backups/app/3000.json", infos[0].Object)
	assert.Equal(t, time.UnixMilli(3000).UTC(), infos[0].CreatedAt)
	assert.Equal(t, int64(10), infos[1].Size)
}

func TestList_Error(t *testing.T) {
	svc, _, client := setupService(t)
	client.On("ListObjects", mock.Anything, testBucket, mock.Anything).
		Return(mocks.ObjectChannel(minio.ObjectInfo{Err: errors.New("access denied")}))

	_, err := svc.List(context.Background(), "app")
	assert.ErrorContains(t, err, "access denied")
}

func TestLatest_None(t *testing.T) {
	svc, _, client := setupService(t)
	client.On("ListObjects", mock.Anything, testBucket, mock.Anything).Return(mocks.ObjectChannel())

	_, err := svc.Latest(context.Background(), "app")
	assert.ErrorIs(t, err, ErrNoSnapshots)
}

func TestVerify(t *testing.T) {
	svc, store, client := setupService(t)
	mockLive(store, "app", map[string]string{"a": `1`, "b": `3`, "extra": `0`})
	client.On("GetObject", mock.Anything, testBucket, "backups/app/1.json", mock.Anything).
		Return(snapshotBody(t, map[string]string{"a": `1`, "b": `2`, "c": `"x"`}), nil)

	result, err := svc.Verify(context.Background(), "app", "backups/app/1.json")
	require.NoError(t, err)
	assert.Equal(t, "backups/app/1.json", result.Object)
	assert.Equal(t, reconcile.Summary{Total: 4, InSync: 1, MissingActual: 1, MissingExpected: 1, Mismatches: 1}, result.Summary)
}

func TestVerify_UsesLatest(t *testing.T) {
	svc, store, client := setupService(t)
	mockLive(store, "app", map[string]string{"a": `1`})
	client.On("ListObjects", mock.Anything, testBucket, mock.Anything).
		Return(mocks.ObjectChannel(
			minio.ObjectInfo{Key: "backups/app/1000.json"},
			minio.ObjectInfo{Key: "backups/app/2000.json"},
		))
	client.On("GetObject", mock.Anything, testBucket, "backups/app/2000.json", mock.Anything).
		Return(snapshotBody(t, map[string]string{"a": `1`}), nil)

	result, err := svc.Verify(context.Background(), "app", "")
	require.NoError(t, err)
	assert.Equal(t, "backups/app/2000.json", result.Object)
	assert.True(t, result.Summary.Clean())
}

func TestVerify_ForeignObject(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.Verify(context.Background(), "app", "backups/other/1.json")
	assert.ErrorIs(t, err, ErrForeignObject)
}

func TestRestore(t *testing.T) {
	t.Run("Confirmed", func(t *testing.T) {
		svc, store, client := setupService(t)
		mockLive(store, "app", map[string]string{"a": `1`, "c": `3`})
		client.On("GetObject", mock.Anything, testBucket, "backups/app/1.json", mock.Anything).
			Return(snapshotBody(t, map[string]string{"a": `1`, "b": `2`}), nil)
		store.On("Put", mock.Anything, "app", "b", json.RawMessage(`2`)).Return(&kv.PutResult{}, nil)
		store.On("Delete", mock.Anything, "app", "c").Return(nil)

		result, err := svc.Restore(context.Background(), "app", "backups/app/1.json", reconcile.Options{Prune: true, Confirmed: true})
		require.NoError(t, err)
		assert.Equal(t, 2, result.Executed)
		assert.Len(t, result.Actions, 2)
		store.AssertExpectations(t)
	})

	t.Run("DryRun", func(t *testing.T) {
		svc, store, client := setupService(t)
		mockLive(store, "app", map[string]string{})
		client.On("GetObject", mock.Anything, testBucket, "backups/app/1.json", mock.Anything).
			Return(snapshotBody(t, map[string]string{"a": `1`}), nil)

		result, err := svc.Restore(context.Background(), "app", "backups/app/1.json", reconcile.Options{DryRun: true, Confirmed: true})
		require.NoError(t, err)
		assert.Zero(t, result.Executed)
		require.Len(t, result.Actions, 1)
		assert.Equal(t, reconcile.ActionPut, result.Actions[0].Type)
		store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("PutFails", func(t *testing.T) {
		svc, store, client := setupService(t)
		mockLive(store, "app", map[string]string{})
		client.On("GetObject", mock.Anything, testBucket, "backups/app/1.json", mock.Anything).
			Return(snapshotBody(t, map[string]string{"a": `1`}), nil)
		store.On("Put", mock.Anything, "app", "a", mock.Anything).Return(nil, &kv.HTTPError{StatusCode: 429})

		result, err := svc.Restore(context.Background(), "app", "backups/app/1.json", reconcile.Options{Confirmed: true})
		assert.ErrorIs(t, err, kv.ErrHTTP)
		require.NotNil(t, result)
		assert.Zero(t, result.Executed)
	})

	t.Run("MissingObject", func(t *testing.T) {
		svc, _, client := setupService(t)
		client.On("GetObject", mock.Anything, testBucket, "backups/app/1.json", mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

		_, err := svc.Restore(context.Background(), "app", "backups/app/1.json", reconcile.Options{Confirmed: true})
		var minioErr minio.ErrorResponse
		require.ErrorAs(t, err, &minioErr)
		assert.Equal(t, "NoSuchKey", minioErr.Code)
	})
}

func TestRemove(t *testing.T) {
	svc, _, client := setupService(t)
	client.On("RemoveObject", mock.Anything, testBucket, "backups/app/1.json", mock.Anything).Return(nil)

	require.NoError(t, svc.Remove(context.Background(), "app", "backups/app/1.json"))
	assert.ErrorIs(t, svc.Remove(context.Background(), "app", "elsewhere/1.json"), ErrForeignObject)
	client.AssertNumberOfCalls(t, "RemoveObject", 1)
}
