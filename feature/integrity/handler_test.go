package integrity

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"catalog-sync/core/database"
	"catalog-sync/core/storage/mocks"
	"catalog-sync/feature/catalog/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *mocks.Client) {
	app := fiber.New()
	mockClient := new(mocks.Client)
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))

	svc := NewService(mockClient, testStorage, zap.NewNop(), db)
	handler := NewHandler(svc)
	handler.RegisterRoutes(app)
	return app, mockClient
}

func TestHandleSchemaCheck(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/schema", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["matched"])
}

func TestHandleStorageCheck(t *testing.T) {
	t.Run("checked", func(t *testing.T) {
		app, mockClient := setupTestApp(t)
		mockClient.On("BucketExists", mock.Anything, mock.Anything).Return(false, nil)

		resp, err := app.Test(httptest.NewRequest("GET", "/integrity/storage", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "checked", body["status"])
		assert.Len(t, body["missing"], 2)
		mockClient.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("fixed", func(t *testing.T) {
		app, mockClient := setupTestApp(t)
		mockClient.On("BucketExists", mock.Anything, "erp-private").Return(true, nil)
		mockClient.On("BucketExists", mock.Anything, "erp-public").Return(false, nil)
		mockClient.On("MakeBucket", mock.Anything, "erp-public", mock.Anything).Return(nil)

		resp, err := app.Test(httptest.NewRequest("GET", "/integrity/storage?fix=true", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "fixed", body["status"])
	})

	t.Run("error", func(t *testing.T) {
		app, mockClient := setupTestApp(t)
		mockClient.On("BucketExists", mock.Anything, mock.Anything).Return(false, errors.New("connection refused"))

		resp, err := app.Test(httptest.NewRequest("GET", "/integrity/storage", nil))
		require.NoError(t, err)
		assert.Equal(t, 500, resp.StatusCode)
	})
}

func TestHandleIntegrityCheck(t *testing.T) {
	app, mockClient := setupTestApp(t)
	mockClient.On("BucketExists", mock.Anything, mock.Anything).Return(true, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body, "schema")
	assert.Contains(t, body, "storage")
}
