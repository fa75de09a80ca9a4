package reconcile

import (
	"context"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/models"
)

// PublishedScope publishes outbound products on every sales channel.
const PublishedScope = "global"

// maxOptions is the number of option axes the platform accepts.
const maxOptions = 3

// Outbound builds the product payload of a template or standalone item. For a
// template it also returns the children in payload order, so returned variant ids
// can be written back by position.
func (c *Composer) Outbound(ctx context.Context, item *models.Item, s Settings) (models.OutboundProduct, []models.Item, error) {
	product := models.OutboundProduct{
		Title:          item.Name,
		BodyHTML:       item.Description,
		ProductType:    item.Group,
		Vendor:         item.DefaultSupplier,
		PublishedScope: PublishedScope,
	}
	if item.IsSynced() {
		product.ID = *item.RemoteProductID
	}

	if !item.IsTemplate {
		v, err := c.projector.Project(ctx, item, s)
		if err != nil {
			return product, nil, err
		}
		product.Variants = []models.OutboundVariant{v}
		return product, nil, nil
	}

	children, err := c.repo.ListChildren(ctx, item.Code)
	if err != nil {
		return product, nil, err
	}
	if len(children) == 0 {
		return product, nil, reconcile.NewValidationError("variants", "template %s has no variants", item.Code)
	}

	var (
		names  []string
		values = make(map[string][]string)
		seen   = make(map[models.AttributePair]bool)
	)
	for i := range children {
		child := &children[i]
		v, err := c.projector.Project(ctx, child, s)
		if err != nil {
			return product, nil, err
		}
		for pos, a := range child.Pairs() {
			if pos >= maxOptions {
				break
			}
			v.SetOption(pos+1, a.Value)
			if _, ok := values[a.Attribute]; !ok {
				names = append(names, a.Attribute)
				values[a.Attribute] = nil
			}
			if !seen[a] {
				seen[a] = true
				values[a.Attribute] = append(values[a.Attribute], a.Value)
			}
		}
		product.Variants = append(product.Variants, v)
	}

	for i, name := range names {
		if i >= maxOptions {
			break
		}
		product.Options = append(product.Options, models.OutboundOption{
			Name:     name,
			Position: i + 1,
			Values:   values[name],
		})
	}
	return product, children, nil
}
