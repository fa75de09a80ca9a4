package models

import (
	"github.com/shopspring/decimal"
)

// PlaceholderOptionValue is the single option value the platform assigns to
// products without real options.
const PlaceholderOptionValue = "Default Title"

// InventoryManagement marks a variant whose quantity is tracked by the platform.
const InventoryManagement = "shopify"

// RemoteProduct is a product as returned by the platform.
type RemoteProduct struct {
	ID          int64           `json:"id" validate:"required,gt=0"`
	Title       string          `json:"title" validate:"required"`
	BodyHTML    string          `json:"body_html"`
	ProductType string          `json:"product_type"`
	Vendor      string          `json:"vendor"`
	Image       *RemoteImage    `json:"image,omitempty"`
	Options     []RemoteOption  `json:"options" validate:"max=3,dive"`
	Variants    []RemoteVariant `json:"variants" validate:"min=1,dive"`
}

// HasVariants reports whether the product has real option axes.
func (p *RemoteProduct) HasVariants() bool {
	if len(p.Options) == 0 {
		return false
	}
	for _, v := range p.Options[0].Values {
		if v == PlaceholderOptionValue {
			return false
		}
	}
	return true
}

// ImageSrc returns the main image URL, or "".
func (p *RemoteProduct) ImageSrc() string {
	if p.Image == nil {
		return ""
	}
	return p.Image.Src
}

// RemoteOption is one option axis (e.g. Size) of a product.
type RemoteOption struct {
	ID       int64    `json:"id,omitempty"`
	Name     string   `json:"name" validate:"required"`
	Position int      `json:"position"`
	Values   []string `json:"values"`
}

// RemoteVariant is one purchasable variant of a product.
type RemoteVariant struct {
	ID                int64           `json:"id" validate:"required,gt=0"`
	Title             string          `json:"title"`
	Option1           *string         `json:"option1"`
	Option2           *string         `json:"option2"`
	Option3           *string         `json:"option3"`
	Price             decimal.Decimal `json:"price"`
	SKU               string          `json:"sku"`
	Weight            float64         `json:"weight"`
	WeightUnit        string          `json:"weight_unit"`
	InventoryQuantity int             `json:"inventory_quantity"`
}

// OptionValues returns option1..3 in position order; absent options are "".
func (v *RemoteVariant) OptionValues() [3]string {
	var out [3]string
	for i, o := range []*string{v.Option1, v.Option2, v.Option3} {
		if o != nil {
			out[i] = *o
		}
	}
	return out
}

// RemoteImage is an image attached to a product.
type RemoteImage struct {
	ID        int64  `json:"id,omitempty"`
	ProductID int64  `json:"product_id,omitempty"`
	Src       string `json:"src"`
}

// OutboundProduct is the product payload sent on create and replace.
type OutboundProduct struct {
	ID             int64             `json:"id,omitempty"`
	Title          string            `json:"title"`
	BodyHTML       string            `json:"body_html"`
	ProductType    string            `json:"product_type"`
	Vendor         string            `json:"vendor"`
	PublishedScope string            `json:"published_scope,omitempty"`
	Options        []OutboundOption  `json:"options,omitempty"`
	Variants       []OutboundVariant `json:"variants"`
}

// OutboundOption is one option axis in an outbound payload.
type OutboundOption struct {
	Name     string   `json:"name"`
	Position int      `json:"position"`
	Values   []string `json:"values"`
}

// OutboundVariant is the projection of one item onto a remote variant.
// Optional blocks are omitted when not applicable.
type OutboundVariant struct {
	ID                  int64    `json:"id,omitempty"`
	Price               float64  `json:"price"`
	SKU                 string   `json:"sku,omitempty"`
	Weight              *float64 `json:"weight,omitempty"`
	WeightUnit          string   `json:"weight_unit,omitempty"`
	Grams               *float64 `json:"grams,omitempty"`
	InventoryQuantity   *int     `json:"inventory_quantity,omitempty"`
	InventoryManagement string   `json:"inventory_management,omitempty"`
	Option1             string   `json:"option1,omitempty"`
	Option2             string   `json:"option2,omitempty"`
	Option3             string   `json:"option3,omitempty"`
}

// SetOption assigns option field pos (1..3). Other positions are ignored.
func (v *OutboundVariant) SetOption(pos int, value string) {
	switch pos {
	case 1:
		v.Option1 = value
	case 2:
		v.Option2 = value
	case 3:
		v.Option3 = value
	}
}

// InventoryUpdate is the partial product update carrying one variant's quantity.
type InventoryUpdate struct {
	ProductID int64            `json:"id"`
	Variants  []InventoryLevel `json:"variants"`
}

// InventoryLevel is a quantity-only variant update.
type InventoryLevel struct {
	ID                  int64  `json:"id"`
	InventoryQuantity   int    `json:"inventory_quantity"`
	InventoryManagement string `json:"inventory_management"`
}

// ImagePayload adds an image to a product, either inline (Attachment + Filename) or by Src.
type ImagePayload struct {
	Attachment string `json:"attachment,omitempty"`
	Filename   string `json:"filename,omitempty"`
	Src        string `json:"src,omitempty"`
}
