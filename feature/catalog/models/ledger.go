package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceEntry is the rate of an item in a price list. Unique per (item, price list).
type PriceEntry struct {
	ID        uint            `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ItemCode  string          `gorm:"column:item_code;size:140;uniqueIndex:idx_item_price_list" json:"item_code"`
	PriceList string          `gorm:"column:price_list;size:140;uniqueIndex:idx_item_price_list" json:"price_list"`
	Rate      decimal.Decimal `gorm:"column:price_list_rate;type:decimal(21,9)" json:"price_list_rate"`
	UpdatedAt time.Time       `gorm:"column:modified" json:"modified"`
}

// TableName overrides the table name.
func (PriceEntry) TableName() string { return "item_prices" }

// StockLevel is the on-hand quantity of an item in a warehouse.
type StockLevel struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ItemCode  string    `gorm:"column:item_code;size:140;uniqueIndex:idx_stock_item_warehouse" json:"item_code"`
	Warehouse string    `gorm:"column:warehouse;size:140;uniqueIndex:idx_stock_item_warehouse" json:"warehouse"`
	ActualQty float64   `gorm:"column:actual_qty" json:"actual_qty"`
	UpdatedAt time.Time `gorm:"column:modified" json:"modified"`
}

// TableName overrides the table name.
func (StockLevel) TableName() string { return "stock_levels" }

// RootItemGroup is the group assigned to items pulled without a product type.
const RootItemGroup = "All Item Groups"

// ItemGroup is a node of the item group tree.
type ItemGroup struct {
	Name    string `gorm:"column:item_group_name;primaryKey;size:140" json:"item_group_name"`
	Parent  string `gorm:"column:parent_item_group;size:140" json:"parent_item_group"`
	IsGroup bool   `gorm:"column:is_group" json:"is_group"`
}

// TableName overrides the table name.
func (ItemGroup) TableName() string { return "item_groups" }

// RemoteSupplierType is the supplier type assigned to vendors created by the pull.
const RemoteSupplierType = "Online Store Supplier"

// Supplier is a vendor created from the remote product's vendor field.
type Supplier struct {
	Name         string `gorm:"column:supplier_name;primaryKey;size:140" json:"supplier_name"`
	RemoteID     string `gorm:"column:remote_supplier_id;size:140;index" json:"remote_supplier_id"`
	SupplierType string `gorm:"column:supplier_type;size:140" json:"supplier_type"`
}

// TableName overrides the table name.
func (Supplier) TableName() string { return "suppliers" }

// SyncState is the single-row record of the last complete sync.
type SyncState struct {
	ID         uint       `gorm:"column:id;primaryKey" json:"-"`
	LastSyncAt *time.Time `gorm:"column:last_sync_datetime" json:"last_sync_datetime"`
}

// TableName overrides the table name.
func (SyncState) TableName() string { return "sync_state" }

// All returns every persisted model, in migration order.
func All() []any {
	return []any{
		&Item{},
		&ItemAttribute{},
		&AttributeDefinition{},
		&AttributeValue{},
		&PriceEntry{},
		&StockLevel{},
		&ItemGroup{},
		&Supplier{},
		&SyncState{},
	}
}
