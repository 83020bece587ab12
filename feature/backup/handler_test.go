package backup

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"kv-storage/core/kv"
	kvmocks "kv-storage/core/kv/mocks"
	"kv-storage/core/server"
	"kv-storage/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) (*fiber.App, *kvmocks.Store, *mocks.Client) {
	t.Helper()
	svc, store, client := setupService(t)
	app := fiber.New(fiber.Config{ErrorHandler: server.ErrorHandler})
	NewHandler(svc).RegisterRoutes(app)
	return app, store, client
}

func decodeError(t *testing.T, resp *http.Response) server.ErrorBody {
	t.Helper()
	var body server.ErrorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHandleList(t *testing.T) {
	app, _, client := setupTestApp(t)
	client.On("ListObjects", mock.Anything, testBucket, mock.Anything).
		Return(mocks.ObjectChannel(minio.ObjectInfo{Key: "backups/app/1000.json", Size: 5}))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/backups/app", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Snapshots []Info `json:"snapshots"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Snapshots, 1)
	assert.Equal(t, "backups/app/1000.json", body.Snapshots[0].Object)
}

func TestHandleList_EscapedNamespace(t *testing.T) {
	app, _, client := setupTestApp(t)
	client.On("ListObjects", mock.Anything, testBucket, minio.ListObjectsOptions{Prefix: "backups/my-app/", Recursive: true}).
		Return(mocks.ObjectChannel(minio.ObjectInfo{Key: "backups/my-app/1000.json", Size: 5}))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/backups/my%2Dapp", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	client.AssertExpectations(t)
}

func TestHandleExport(t *testing.T) {
	app, store, client := setupTestApp(t)
	mockLive(store, "app", map[string]string{"a": `1`})
	client.On("BucketExists", mock.Anything, testBucket).Return(true, nil)
	client.On("PutObject", mock.Anything, testBucket, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/backups/app", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var info Info
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, 1, info.Keys)
}

func TestHandleExport_UpstreamStatus(t *testing.T) {
	app, store, _ := setupTestApp(t)
	store.On("List", mock.Anything, "app", "").Return(nil, &kv.HTTPError{StatusCode: 400, Message: "Namespace name must contain only lowercase letters, numbers, and hyphens"})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/backups/app", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleVerify_NoSnapshots(t *testing.T) {
	app, _, client := setupTestApp(t)
	client.On("ListObjects", mock.Anything, testBucket, mock.Anything).Return(mocks.ObjectChannel())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/backups/app/verify", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No snapshots found", decodeError(t, resp).Error)
}

func TestHandleRestore(t *testing.T) {
	t.Run("PlanOnlyWithoutConfirm", func(t *testing.T) {
		app, store, client := setupTestApp(t)
		mockLive(store, "app", map[string]string{})
		client.On("GetObject", mock.Anything, testBucket, "backups/app/1.json", mock.Anything).
			Return(snapshotBody(t, map[string]string{"a": `1`}), nil)

		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/backups/app/restore?object=backups/app/1.json", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result RestoreResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Len(t, result.Actions, 1)
		assert.Zero(t, result.Executed)
		store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Confirmed", func(t *testing.T) {
		app, store, client := setupTestApp(t)
		mockLive(store, "app", map[string]string{})
		client.On("GetObject", mock.Anything, testBucket, "backups/app/1.json", mock.Anything).
			Return(snapshotBody(t, map[string]string{"a": `1`}), nil)
		store.On("Put", mock.Anything, "app", "a", mock.Anything).Return(&kv.PutResult{}, nil)

		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/backups/app/restore?object=backups/app/1.json&confirm=true", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result RestoreResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, 1, result.Executed)
	})

	t.Run("SnapshotMissing", func(t *testing.T) {
		app, _, client := setupTestApp(t)
		client.On("GetObject", mock.Anything, testBucket, "backups/app/9.json", mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/backups/app/restore?object=backups/app/9.json", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestHandleRemove(t *testing.T) {
	app, _, client := setupTestApp(t)
	client.On("RemoveObject", mock.Anything, testBucket, "backups/app/1.json", mock.Anything).Return(nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/backups/app?object=backups/app/1.json", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/backups/app", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing object", decodeError(t, resp).Error)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/backups/app?object=backups/other/1.json", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFeature(t *testing.T) {
	disabled := NewFeature(new(kvmocks.Store), nil, storageConfig(), nil)
	assert.Equal(t, "backup", disabled.Name())
	assert.False(t, disabled.IsEnabled())

	enabled := NewFeature(new(kvmocks.Store), new(mocks.Client), storageConfig(), nil)
	assert.True(t, enabled.IsEnabled())
	assert.NoError(t, enabled.Load(fiber.New()))
}
