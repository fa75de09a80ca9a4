package reconcile_test

import (
	"context"
	"testing"

	"catalog-sync/core/database"
	"catalog-sync/feature/catalog/models"
	catalog "catalog-sync/feature/catalog/reconcile"
	"catalog-sync/feature/catalog/reconcile/mocks"
	"catalog-sync/feature/catalog/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	store  *store.Store
	remote *mocks.RemoteCatalog
	files  *mocks.FileStore
	prober *mocks.ImageProber
	orch   *catalog.Orchestrator
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))

	f := &fixture{
		store:  store.New(db),
		remote: new(mocks.RemoteCatalog),
		files:  new(mocks.FileStore),
		prober: new(mocks.ImageProber),
	}
	f.orch = catalog.NewOrchestrator(f.store, f.remote, f.files, f.prober, zap.NewNop())
	return f
}

func settings() catalog.Settings {
	return catalog.Settings{Enabled: true, PriceList: "Standard Selling", Warehouse: "Stores"}
}

func ptr[T any](v T) *T { return &v }

func (f *fixture) createItem(t *testing.T, item models.Item) {
	t.Helper()
	require.NoError(t, f.store.CreateItem(context.Background(), &item))
}

func (f *fixture) setPrice(t *testing.T, code, rate string) {
	t.Helper()
	require.NoError(t, f.store.UpsertPrice(context.Background(), code, "Standard Selling", decimal.RequireFromString(rate)))
}

func (f *fixture) item(t *testing.T, code string) *models.Item {
	t.Helper()
	item, err := f.store.GetItem(context.Background(), code)
	require.NoError(t, err)
	return item
}

func sizeProduct() models.RemoteProduct {
	return models.RemoteProduct{
		ID:          100,
		Title:       "Tee",
		BodyHTML:    "<p>Cotton tee</p>",
		ProductType: "Shirts",
		Vendor:      "Acme",
		Options:     []models.RemoteOption{{Name: "Size", Position: 1, Values: []string{"S", "M", "L"}}},
		Variants: []models.RemoteVariant{
			{ID: 1001, Option1: ptr("S"), Price: decimal.RequireFromString("10.00"), SKU: "TEE-S"},
			{ID: 1002, Option1: ptr("M"), Price: decimal.RequireFromString("11.00"), SKU: "TEE-M"},
			{ID: 1003, Option1: ptr("L"), Price: decimal.RequireFromString("12.00"), SKU: "TEE-L"},
		},
	}
}

func standaloneProduct(id, variantID int64, title string) models.RemoteProduct {
	return models.RemoteProduct{
		ID:      id,
		Title:   title,
		Options: []models.RemoteOption{{Name: "Title", Position: 1, Values: []string{models.PlaceholderOptionValue}}},
		Variants: []models.RemoteVariant{
			{ID: variantID, Option1: ptr(models.PlaceholderOptionValue), Price: decimal.RequireFromString("5.50"), Weight: 1.5, WeightUnit: "kg"},
		},
	}
}
