package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/models"
	catalog "catalog-sync/feature/catalog/reconcile"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store implements the catalog Repository on GORM.
type Store struct {
	db *gorm.DB
}

// New creates a Store.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates every catalog table and seeds the root item group.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate catalog schema: %w", err)
	}
	root := models.ItemGroup{Name: models.RootItemGroup, IsGroup: true}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&root).Error; err != nil {
		return fmt.Errorf("failed to seed root item group: %w", err)
	}
	return nil
}

// Atomic runs fn in a transaction. Nested calls use savepoints.
func (s *Store) Atomic(ctx context.Context, fn func(repo catalog.Repository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return reconcile.ErrNotFound
	}
	return err
}

func (s *Store) findItem(ctx context.Context, query string, args ...any) (*models.Item, error) {
	var item models.Item
	err := s.db.WithContext(ctx).
		Preload("Attributes", func(db *gorm.DB) *gorm.DB { return db.Order("idx ASC") }).
		Where(query, args...).
		Order("item_code ASC").
		First(&item).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

// GetItem finds an item by code.
func (s *Store) GetItem(ctx context.Context, code string) (*models.Item, error) {
	return s.findItem(ctx, "item_code = ?", code)
}

// FindByRemoteProductID finds the template or standalone item linked to a remote product.
func (s *Store) FindByRemoteProductID(ctx context.Context, id int64) (*models.Item, error) {
	return s.findItem(ctx, "remote_product_id = ? AND (variant_of IS NULL OR variant_of = '')", id)
}

// FindByRemoteVariantID finds the item linked to a remote variant.
func (s *Store) FindByRemoteVariantID(ctx context.Context, id int64) (*models.Item, error) {
	return s.findItem(ctx, "remote_variant_id = ?", id)
}

// FindByName finds the first item with the exact name.
func (s *Store) FindByName(ctx context.Context, name string) (*models.Item, error) {
	return s.findItem(ctx, "item_name = ?", name)
}

// ListChildren lists the variants of a template.
func (s *Store) ListChildren(ctx context.Context, templateCode string) ([]models.Item, error) {
	var items []models.Item
	err := s.db.WithContext(ctx).
		Preload("Attributes", func(db *gorm.DB) *gorm.DB { return db.Order("idx ASC") }).
		Where("variant_of = ?", templateCode).
		Order("item_code ASC").
		Find(&items).Error
	return items, err
}

// CreateItem inserts an item and its attributes.
func (s *Store) CreateItem(ctx context.Context, item *models.Item) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Attributes").Create(item).Error; err != nil {
			return fmt.Errorf("failed to create item %s: %w", item.Code, err)
		}
		return insertAttributes(tx, item)
	})
}

// SaveItem updates an item and replaces its attributes.
func (s *Store) SaveItem(ctx context.Context, item *models.Item) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Attributes").Save(item).Error; err != nil {
			return fmt.Errorf("failed to save item %s: %w", item.Code, err)
		}
		if err := tx.Where("parent = ?", item.Code).Delete(&models.ItemAttribute{}).Error; err != nil {
			return fmt.Errorf("failed to clear attributes of %s: %w", item.Code, err)
		}
		return insertAttributes(tx, item)
	})
}

func insertAttributes(tx *gorm.DB, item *models.Item) error {
	if len(item.Attributes) == 0 {
		return nil
	}
	for i := range item.Attributes {
		item.Attributes[i].ID = 0
		item.Attributes[i].ItemCode = item.Code
	}
	if err := tx.Create(&item.Attributes).Error; err != nil {
		return fmt.Errorf("failed to write attributes of %s: %w", item.Code, err)
	}
	return nil
}

// SetRemoteIDs links an item to a remote product and variant. Zero clears an id.
func (s *Store) SetRemoteIDs(ctx context.Context, code string, productID, variantID int64) error {
	var probe models.Item
	probe.SetRemoteIDs(productID, variantID)
	res := s.db.WithContext(ctx).Model(&models.Item{}).
		Where("item_code = ?", code).
		Updates(map[string]any{
			"remote_product_id": probe.RemoteProductID,
			"remote_variant_id": probe.RemoteVariantID,
			"modified":          time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to link item %s: %w", code, res.Error)
	}
	if res.RowsAffected == 0 {
		return reconcile.ErrNotFound
	}
	return nil
}

// ListPushCandidates lists the items the push pass considers.
func (s *Store) ListPushCandidates(ctx context.Context, since *time.Time) ([]models.Item, error) {
	q := s.db.WithContext(ctx).
		Preload("Attributes", func(db *gorm.DB) *gorm.DB { return db.Order("idx ASC") }).
		Where("sync_with_remote = ?", true).
		Where("variant_of IS NULL OR variant_of = ''").
		Where("disabled = ?", false)
	if since != nil {
		q = q.Where("modified >= ?", *since)
	}
	var items []models.Item
	err := q.Order("item_code ASC").Find(&items).Error
	return items, err
}

// ListStockCandidates lists the items whose quantities are pushed.
func (s *Store) ListStockCandidates(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := s.db.WithContext(ctx).
		Where("sync_with_remote = ? AND sync_qty_with_remote = ? AND disabled = ?", true, true, false).
		Order("item_code ASC").
		Find(&items).Error
	return items, err
}

// GetAttributeDefinition finds a definition with its values in position order.
func (s *Store) GetAttributeDefinition(ctx context.Context, name string) (*models.AttributeDefinition, error) {
	var def models.AttributeDefinition
	err := s.db.WithContext(ctx).
		Preload("Values", func(db *gorm.DB) *gorm.DB { return db.Order("idx ASC") }).
		Where("attribute_name = ?", name).
		First(&def).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &def, nil
}

// SaveAttributeDefinition upserts a definition and replaces its values.
func (s *Store) SaveAttributeDefinition(ctx context.Context, def *models.AttributeDefinition) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Values").Save(def).Error; err != nil {
			return fmt.Errorf("failed to save attribute %s: %w", def.Name, err)
		}
		if err := tx.Where("parent = ?", def.Name).Delete(&models.AttributeValue{}).Error; err != nil {
			return fmt.Errorf("failed to clear values of %s: %w", def.Name, err)
		}
		if len(def.Values) == 0 {
			return nil
		}
		for i := range def.Values {
			def.Values[i].ID = 0
			def.Values[i].Parent = def.Name
			def.Values[i].Position = i + 1
		}
		if err := tx.Create(&def.Values).Error; err != nil {
			return fmt.Errorf("failed to write values of %s: %w", def.Name, err)
		}
		return nil
	})
}

// GetPrice returns the rate of an item in a price list.
func (s *Store) GetPrice(ctx context.Context, code, priceList string) (decimal.Decimal, bool, error) {
	var entry models.PriceEntry
	err := s.db.WithContext(ctx).
		Where("item_code = ? AND price_list = ?", code, priceList).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}
	return entry.Rate, true, nil
}

// UpsertPrice sets the rate of an item in a price list.
func (s *Store) UpsertPrice(ctx context.Context, code, priceList string, rate decimal.Decimal) error {
	entry := models.PriceEntry{ItemCode: code, PriceList: priceList, Rate: rate, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_code"}, {Name: "price_list"}},
		DoUpdates: clause.AssignmentColumns([]string{"price_list_rate", "modified"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to upsert price of %s in %s: %w", code, priceList, err)
	}
	return nil
}

// GetStockQty returns the actual quantity of an item in a warehouse.
func (s *Store) GetStockQty(ctx context.Context, code, warehouse string) (float64, bool, error) {
	var level models.StockLevel
	err := s.db.WithContext(ctx).
		Where("item_code = ? AND warehouse = ?", code, warehouse).
		First(&level).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return level.ActualQty, true, nil
}

// SetStockQty records the actual quantity of an item in a warehouse.
func (s *Store) SetStockQty(ctx context.Context, code, warehouse string, qty float64) error {
	level := models.StockLevel{ItemCode: code, Warehouse: warehouse, ActualQty: qty, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_code"}, {Name: "warehouse"}},
		DoUpdates: clause.AssignmentColumns([]string{"actual_qty", "modified"}),
	}).Create(&level).Error
	if err != nil {
		return fmt.Errorf("failed to set stock of %s in %s: %w", code, warehouse, err)
	}
	return nil
}

// EnsureItemGroup returns productType as a group name, creating the group when missing.
// An empty product type maps to the root group.
func (s *Store) EnsureItemGroup(ctx context.Context, productType string) (string, error) {
	name := strings.TrimSpace(productType)
	if name == "" {
		return models.RootItemGroup, nil
	}
	group := models.ItemGroup{Name: name, Parent: models.RootItemGroup}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&group).Error
	if err != nil {
		return "", fmt.Errorf("failed to ensure item group %s: %w", name, err)
	}
	return name, nil
}

// EnsureSupplier returns the supplier for vendor, creating it when missing.
// Vendors are matched case-insensitively through the remote supplier id.
func (s *Store) EnsureSupplier(ctx context.Context, vendor string) (string, error) {
	vendor = strings.TrimSpace(vendor)
	if vendor == "" {
		return "", nil
	}
	remoteID := strings.ToLower(vendor)

	var existing models.Supplier
	err := s.db.WithContext(ctx).
		Where("remote_supplier_id = ? OR supplier_name = ?", remoteID, vendor).
		First(&existing).Error
	if err == nil {
		return existing.Name, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	supplier := models.Supplier{Name: vendor, RemoteID: remoteID, SupplierType: models.RemoteSupplierType}
	if err := s.db.WithContext(ctx).Create(&supplier).Error; err != nil {
		return "", fmt.Errorf("failed to create supplier %s: %w", vendor, err)
	}
	return supplier.Name, nil
}

// LastSyncAt returns the time of the last complete sync, or nil.
func (s *Store) LastSyncAt(ctx context.Context) (*time.Time, error) {
	var state models.SyncState
	err := s.db.WithContext(ctx).First(&state, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return state.LastSyncAt, nil
}

// SetLastSyncAt records the time of a complete sync.
func (s *Store) SetLastSyncAt(ctx context.Context, t time.Time) error {
	state := models.SyncState{ID: 1, LastSyncAt: &t}
	return s.db.WithContext(ctx).Save(&state).Error
}
