package reconcile

import (
	"context"
	"fmt"
	"strings"

	"catalog-sync/feature/catalog/models"
)

// gramsPerUnit converts the supported weight units to grams.
var gramsPerUnit = map[string]float64{
	"kg": 1000,
	"g":  1,
	"lb": 453.592,
	"oz": 28.3495,
}

// Grams converts weight expressed in unit to grams. The unit is matched
// case-insensitively; ok is false for unsupported units.
func Grams(weight float64, unit string) (grams float64, ok bool) {
	factor, ok := gramsPerUnit[strings.ToLower(strings.TrimSpace(unit))]
	if !ok {
		return 0, false
	}
	return weight * factor, true
}

// Projector builds the outbound variant block of a single item.
type Projector struct {
	repo Repository
}

// NewProjector creates a Projector.
func NewProjector(repo Repository) *Projector {
	return &Projector{repo: repo}
}

// Project reads the item's price, weight and quantity into an outbound variant.
// The price defaults to 0; the weight block is omitted for a zero weight or an
// unsupported unit; the quantity block is only set for quantity-synced items.
func (p *Projector) Project(ctx context.Context, item *models.Item, s Settings) (models.OutboundVariant, error) {
	var v models.OutboundVariant

	price, ok, err := p.repo.GetPrice(ctx, item.Code, s.PriceList)
	if err != nil {
		return v, fmt.Errorf("failed to read price of %s: %w", item.Code, err)
	}
	if ok {
		v.Price = price.InexactFloat64()
	}

	if item.NetWeight != 0 {
		if grams, ok := Grams(item.NetWeight, item.WeightUOM); ok {
			weight := item.NetWeight
			v.Weight = &weight
			v.WeightUnit = strings.ToLower(strings.TrimSpace(item.WeightUOM))
			v.Grams = &grams
		}
	}

	if item.SyncQty {
		qty, _, err := p.repo.GetStockQty(ctx, item.Code, s.Warehouse)
		if err != nil {
			return v, fmt.Errorf("failed to read stock of %s: %w", item.Code, err)
		}
		n := int(qty)
		v.InventoryQuantity = &n
		v.InventoryManagement = models.InventoryManagement
	}

	if item.RemoteVariantID != nil {
		v.ID = *item.RemoteVariantID
	}
	v.SKU = item.SKU
	return v, nil
}
