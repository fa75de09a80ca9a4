package reconcile

import (
	"context"
	"time"

	"catalog-sync/feature/catalog/models"

	"github.com/shopspring/decimal"
)

// Repository is the local catalog store used by the sync.
// Lookups return reconcile.ErrNotFound when no record matches.
type Repository interface {
	// Atomic runs fn inside a transaction; fn must use the Repository it receives.
	Atomic(ctx context.Context, fn func(repo Repository) error) error

	GetItem(ctx context.Context, code string) (*models.Item, error)
	// FindByRemoteProductID matches templates and standalone items, never variants.
	FindByRemoteProductID(ctx context.Context, id int64) (*models.Item, error)
	FindByRemoteVariantID(ctx context.Context, id int64) (*models.Item, error)
	// FindByName returns the first item with the exact name, by code ascending.
	FindByName(ctx context.Context, name string) (*models.Item, error)
	// ListChildren returns the variants of a template ordered by code, with attributes.
	ListChildren(ctx context.Context, templateCode string) ([]models.Item, error)
	CreateItem(ctx context.Context, item *models.Item) error
	// SaveItem updates every column and replaces the attribute list.
	SaveItem(ctx context.Context, item *models.Item) error
	SetRemoteIDs(ctx context.Context, code string, productID, variantID int64) error
	// ListPushCandidates returns sync-enabled, enabled, non-variant items modified at or after since (when set).
	ListPushCandidates(ctx context.Context, since *time.Time) ([]models.Item, error)
	// ListStockCandidates returns sync-enabled, enabled items that opt into quantity sync.
	ListStockCandidates(ctx context.Context) ([]models.Item, error)

	GetAttributeDefinition(ctx context.Context, name string) (*models.AttributeDefinition, error)
	// SaveAttributeDefinition creates or updates a definition and replaces its values.
	SaveAttributeDefinition(ctx context.Context, def *models.AttributeDefinition) error

	GetPrice(ctx context.Context, code, priceList string) (decimal.Decimal, bool, error)
	UpsertPrice(ctx context.Context, code, priceList string, rate decimal.Decimal) error
	GetStockQty(ctx context.Context, code, warehouse string) (float64, bool, error)

	// EnsureItemGroup returns the group for a product type, creating it under the root group.
	EnsureItemGroup(ctx context.Context, productType string) (string, error)
	// EnsureSupplier returns the supplier for a vendor, creating it when missing.
	EnsureSupplier(ctx context.Context, vendor string) (string, error)
}

// RemoteCatalog is the e-commerce platform's product API.
// Every method returns a *reconcile.TransportError on network failure or non-2xx status.
type RemoteCatalog interface {
	ListProducts(ctx context.Context) ([]models.RemoteProduct, error)
	CreateProduct(ctx context.Context, p models.OutboundProduct) (*models.RemoteProduct, error)
	ReplaceProduct(ctx context.Context, id int64, p models.OutboundProduct) (*models.RemoteProduct, error)
	UpdateInventory(ctx context.Context, u models.InventoryUpdate) error
	ListProductImages(ctx context.Context, productID int64) ([]models.RemoteImage, error)
	AddProductImage(ctx context.Context, productID int64, img models.ImagePayload) (*models.RemoteImage, error)
}

// FileStore reads locally stored attachments by their stored reference
// ("/files/<name>" or "/private/files/<name>").
type FileStore interface {
	Read(ctx context.Context, ref string) (filename string, data []byte, err error)
}

// ImageProber reports whether a URL serves a supported image content type.
type ImageProber interface {
	IsImage(ctx context.Context, url string) bool
}

// Settings are the per-run sync parameters.
type Settings struct {
	Enabled    bool
	PriceList  string
	Warehouse  string
	LastSyncAt *time.Time
}

// Config holds the persistent sync switches loaded from configuration.
type Config struct {
	// Enabled gates every sync entry point.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// PriceList is the price list read on push and written on pull.
	PriceList string `mapstructure:"price_list" default:"Standard Selling"`
	// Warehouse is the warehouse whose quantities are pushed.
	Warehouse string `mapstructure:"warehouse" default:"Stores"`
}

// Settings builds run settings from the configuration and the last sync time.
func (c Config) Settings(lastSyncAt *time.Time) Settings {
	return Settings{
		Enabled:    c.Enabled,
		PriceList:  c.PriceList,
		Warehouse:  c.Warehouse,
		LastSyncAt: lastSyncAt,
	}
}
