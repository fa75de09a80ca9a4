package catalog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"catalog-sync/core/database"
	"catalog-sync/core/reconcile"
	"catalog-sync/core/storage"
	storagemocks "catalog-sync/core/storage/mocks"
	"catalog-sync/feature/catalog"
	"catalog-sync/feature/catalog/models"
	syncer "catalog-sync/feature/catalog/reconcile"
	"catalog-sync/feature/catalog/reconcile/mocks"
	"catalog-sync/feature/catalog/store"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupFeature(t *testing.T, enabled bool) (*fiber.App, *store.Store, *mocks.RemoteCatalog) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))
	st := store.New(db)

	remote := new(mocks.RemoteCatalog)
	cfg := syncer.Config{Enabled: enabled, PriceList: "Standard Selling", Warehouse: "Stores"}
	feature := catalog.NewFeature(st, remote, nil, nil, cfg, zap.NewNop())
	require.True(t, feature.IsEnabled())

	app := fiber.New()
	require.NoError(t, feature.Load(app))
	return app, st, remote
}

func decodeRun(t *testing.T, body io.Reader) reconcile.RunResult {
	t.Helper()
	var res reconcile.RunResult
	require.NoError(t, json.NewDecoder(body).Decode(&res))
	return res
}

func TestFeature_DisabledWithoutRemote(t *testing.T) {
	f := catalog.NewFeature(nil, nil, nil, nil, syncer.Config{}, zap.NewNop())
	assert.False(t, f.IsEnabled())
	assert.Equal(t, "catalog", f.Name())
}

func TestHandleSync_RecordsLastSyncTime(t *testing.T) {
	app, st, remote := setupFeature(t, true)
	remote.On("ListProducts", mock.Anything).Return([]models.RemoteProduct{}, nil)

	req := httptest.NewRequest("POST", "/catalog/sync", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	res := decodeRun(t, resp.Body)
	assert.Equal(t, reconcile.StatusComplete, res.Status)
	assert.Equal(t, "products", res.Kind)

	last, err := st.LastSyncAt(context.Background())
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.WithinDuration(t, res.FinishedAt, *last, time.Millisecond)
}

func TestHandlePull_DoesNotRecordLastSyncTime(t *testing.T) {
	app, st, remote := setupFeature(t, true)
	remote.On("ListProducts", mock.Anything).Return([]models.RemoteProduct{}, nil)

	resp, err := app.Test(httptest.NewRequest("POST", "/catalog/pull", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	last, err := st.LastSyncAt(context.Background())
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestHandleSync_Disabled(t *testing.T) {
	app, _, remote := setupFeature(t, false)

	resp, err := app.Test(httptest.NewRequest("POST", "/catalog/sync", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	remote.AssertNotCalled(t, "ListProducts", mock.Anything)
}

func TestHandlePush_TransportError(t *testing.T) {
	app, st, remote := setupFeature(t, true)
	require.NoError(t, st.CreateItem(context.Background(), &models.Item{Code: "A", Name: "A", SyncEnabled: true}))
	remote.On("CreateProduct", mock.Anything, mock.Anything).
		Return(nil, &reconcile.TransportError{Method: "POST", Path: "/products.json", StatusCode: 500, Body: "boom"})

	resp, err := app.Test(httptest.NewRequest("POST", "/catalog/push", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "status 500")
	assert.NotNil(t, body["run"])
}

func TestHandleStock(t *testing.T) {
	ctx := context.Background()
	app, st, remote := setupFeature(t, true)
	pid, vid := int64(10), int64(11)
	require.NoError(t, st.CreateItem(ctx, &models.Item{
		Code: "BOX", Name: "Box", SyncEnabled: true, SyncQty: true,
		RemoteProductID: &pid, RemoteVariantID: &vid,
	}))
	remote.On("UpdateInventory", mock.Anything, models.InventoryUpdate{
		ProductID: 10,
		Variants:  []models.InventoryLevel{{ID: 11, InventoryQuantity: 4, InventoryManagement: "shopify"}},
	}).Return(nil)

	t.Run("records quantity and pushes it", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/catalog/stock", bytes.NewBufferString(`{"item_code":"BOX","quantity":4}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		qty, ok, err := st.GetStockQty(ctx, "BOX", "Stores")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 4.0, qty)
		remote.AssertExpectations(t)
	})

	t.Run("missing item code", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/catalog/stock", bytes.NewBufferString(`{"quantity":4}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("negative quantity", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/catalog/stock", bytes.NewBufferString(`{"item_code":"BOX","quantity":-1}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown item", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/catalog/stock", bytes.NewBufferString(`{"item_code":"NOPE"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestHandleStockAll(t *testing.T) {
	app, _, _ := setupFeature(t, true)

	resp, err := app.Test(httptest.NewRequest("POST", "/catalog/stock/all", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	res := decodeRun(t, resp.Body)
	assert.Equal(t, "stock", res.Kind)
}

func TestBlobFiles_Read(t *testing.T) {
	ctx := context.Background()
	cfg := storage.Config{PrivateBucket: "private", PublicBucket: "public"}

	t.Run("public attachment", func(t *testing.T) {
		client := new(storagemocks.Client)
		client.On("GetObject", mock.Anything, "public", "img/chair.png", mock.Anything).
			Return(io.NopCloser(bytes.NewReader([]byte("data"))), nil)

		name, data, err := catalog.NewBlobFiles(client, cfg).Read(ctx, "/files/img/chair.png")
		require.NoError(t, err)
		assert.Equal(t, "chair.png", name)
		assert.Equal(t, []byte("data"), data)
	})

	t.Run("missing private attachment", func(t *testing.T) {
		client := new(storagemocks.Client)
		client.On("GetObject", mock.Anything, "private", "gone.png", mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."})

		_, _, err := catalog.NewBlobFiles(client, cfg).Read(ctx, "/private/files/gone.png")
		assert.ErrorIs(t, err, reconcile.ErrNotFound)
	})

	t.Run("storage failure", func(t *testing.T) {
		client := new(storagemocks.Client)
		client.On("GetObject", mock.Anything, "public", "a.png", mock.Anything).Return(nil, errors.New("dial tcp: refused"))

		_, _, err := catalog.NewBlobFiles(client, cfg).Read(ctx, "/files/a.png")
		require.Error(t, err)
		assert.NotErrorIs(t, err, reconcile.ErrNotFound)
	})

	t.Run("unsupported reference", func(t *testing.T) {
		_, _, err := catalog.NewBlobFiles(new(storagemocks.Client), cfg).Read(ctx, "https://example.com/a.png")
		assert.True(t, reconcile.IsValidation(err))
	})
}
