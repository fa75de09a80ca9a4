package models

import (
	"sort"
	"time"
)

// Item is a sellable ERP item: a standalone product, a variant template or a variant.
type Item struct {
	Code            string          `gorm:"column:item_code;primaryKey;size:140" json:"item_code"`
	Name            string          `gorm:"column:item_name;size:140;index" json:"item_name"`
	Group           string          `gorm:"column:item_group;size:140" json:"item_group"`
	Description     string          `gorm:"column:description;type:text" json:"description"`
	StockUOM        string          `gorm:"column:stock_uom;size:40" json:"stock_uom"`
	SKU             string          `gorm:"column:stock_keeping_unit;size:140" json:"sku"`
	NetWeight       float64         `gorm:"column:net_weight" json:"net_weight"`
	WeightUOM       string          `gorm:"column:weight_uom;size:40" json:"weight_uom"`
	Image           string          `gorm:"column:image;size:255" json:"image"`
	DefaultSupplier string          `gorm:"column:default_supplier;size:140" json:"default_supplier"`
	IsTemplate      bool            `gorm:"column:has_variants" json:"has_variants"`
	TemplateRef     *string         `gorm:"column:variant_of;size:140;index" json:"variant_of,omitempty"`
	RemoteProductID *int64          `gorm:"column:remote_product_id;index" json:"remote_product_id,omitempty"`
	RemoteVariantID *int64          `gorm:"column:remote_variant_id;index" json:"remote_variant_id,omitempty"`
	SyncEnabled     bool            `gorm:"column:sync_with_remote" json:"sync_with_remote"`
	SyncQty         bool            `gorm:"column:sync_qty_with_remote" json:"sync_qty_with_remote"`
	Disabled        bool            `gorm:"column:disabled" json:"disabled"`
	CreatedAt       time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"column:modified;index" json:"modified"`
	Attributes      []ItemAttribute `gorm:"foreignKey:ItemCode;references:Code" json:"attributes,omitempty"`
}

// TableName overrides the table name.
func (Item) TableName() string { return "items" }

// IsVariant reports whether the item is a child of a template.
func (i *Item) IsVariant() bool {
	return i.TemplateRef != nil && *i.TemplateRef != ""
}

// IsSynced reports whether the item is linked to a remote product.
func (i *Item) IsSynced() bool {
	return i.RemoteProductID != nil && *i.RemoteProductID != 0
}

// SetRemoteIDs assigns both remote ids. A zero id clears the field.
func (i *Item) SetRemoteIDs(productID, variantID int64) {
	i.RemoteProductID = optionalID(productID)
	i.RemoteVariantID = optionalID(variantID)
}

// Pairs returns the (attribute, value) pairs of the item in position order.
func (i *Item) Pairs() []AttributePair {
	pairs := make([]AttributePair, 0, len(i.Attributes))
	for _, a := range SortedAttributes(i.Attributes) {
		pairs = append(pairs, AttributePair{Attribute: a.Attribute, Value: a.Value})
	}
	return pairs
}

func optionalID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

// ItemAttribute is one row of an item's ordered attribute list.
// Template rows carry no value; numeric template rows carry the range.
type ItemAttribute struct {
	ID        uint    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ItemCode  string  `gorm:"column:parent;size:140;index" json:"-"`
	Position  int     `gorm:"column:idx" json:"idx"`
	Attribute string  `gorm:"column:attribute;size:140" json:"attribute"`
	Value     string  `gorm:"column:attribute_value;size:140" json:"attribute_value,omitempty"`
	Numeric   bool    `gorm:"column:numeric_values" json:"numeric_values,omitempty"`
	From      float64 `gorm:"column:from_range" json:"from_range,omitempty"`
	To        float64 `gorm:"column:to_range" json:"to_range,omitempty"`
	Increment float64 `gorm:"column:increment" json:"increment,omitempty"`
}

// TableName overrides the table name.
func (ItemAttribute) TableName() string { return "item_attributes" }

// AttributePair is a structured (attribute, value) predicate used for variant matching.
type AttributePair struct {
	Attribute string
	Value     string
}

// SortedAttributes returns a copy of attrs ordered by Position.
func SortedAttributes(attrs []ItemAttribute) []ItemAttribute {
	out := make([]ItemAttribute, len(attrs))
	copy(out, attrs)
	sort.SliceStable(out, func(a, b int) bool { return out[a].Position < out[b].Position })
	return out
}
