package reconcile

import (
	"context"
	"fmt"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/models"

	"go.uber.org/zap"
)

// PushStock sends the quantity of one item after a stock movement in warehouse.
// An empty warehouse means the configured one. Items not yet linked to the remote
// catalog get a full push instead, of their template for variants.
func (o *Orchestrator) PushStock(ctx context.Context, s Settings, code, warehouse string) (*reconcile.RunResult, error) {
	return o.execute(ctx, KindStock, s, func(ctx context.Context, run *reconcile.RunResult) error {
		run.BeginPass(KindStock)
		item, err := o.repo.GetItem(ctx, code)
		if err != nil {
			return fmt.Errorf("item %s: %w", code, err)
		}
		run.Processed()
		err = o.pushStock(ctx, s, item, warehouse, run)
		if reconcile.IsValidation(err) {
			o.skip(run, code, KindStock, err)
			return nil
		}
		return err
	})
}

// PushAllStock sends the quantity of every quantity-synced item in the
// configured warehouse.
func (o *Orchestrator) PushAllStock(ctx context.Context, s Settings) (*reconcile.RunResult, error) {
	return o.execute(ctx, KindStock, s, func(ctx context.Context, run *reconcile.RunResult) error {
		run.BeginPass(KindStock)
		items, err := o.repo.ListStockCandidates(ctx)
		if err != nil {
			return fmt.Errorf("failed to list stock candidates: %w", err)
		}
		for i := range items {
			item := &items[i]
			if item.IsTemplate {
				continue
			}
			run.Processed()
			// Reload: an earlier full push may have linked this item.
			fresh, err := o.repo.GetItem(ctx, item.Code)
			if err != nil {
				return err
			}
			err = o.pushStock(ctx, s, fresh, s.Warehouse, run)
			if reconcile.IsValidation(err) {
				o.skip(run, item.Code, KindStock, err)
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to push stock of %s: %w", item.Code, err)
			}
		}
		return nil
	})
}

func (o *Orchestrator) pushStock(ctx context.Context, s Settings, item *models.Item, warehouse string, run *reconcile.RunResult) error {
	l := o.logger.With(zap.String("item_code", item.Code))
	if warehouse == "" {
		warehouse = s.Warehouse
	}
	if !item.SyncQty || warehouse != s.Warehouse {
		l.Debug("Stock sync not applicable", zap.String("warehouse", warehouse), zap.Bool("sync_qty", item.SyncQty))
		return nil
	}
	if item.IsTemplate {
		return nil
	}

	var tmpl *models.Item
	if item.IsVariant() {
		t, err := o.repo.GetItem(ctx, *item.TemplateRef)
		if err != nil {
			return fmt.Errorf("template %s: %w", *item.TemplateRef, err)
		}
		tmpl = t
	}

	if !item.IsSynced() {
		target := item
		if tmpl != nil {
			target = tmpl
		}
		if !target.SyncEnabled || target.Disabled {
			l.Debug("Item is not enabled for catalog sync", zap.String("target", target.Code))
			return nil
		}
		return o.pushItem(ctx, target, s, run)
	}

	if !item.SyncEnabled {
		return nil
	}
	if item.RemoteVariantID == nil {
		return reconcile.NewValidationError("remote_variant_id", "item %s has no remote variant", item.Code)
	}

	productID := *item.RemoteProductID
	if tmpl != nil && tmpl.IsSynced() {
		productID = *tmpl.RemoteProductID
	}
	qty, _, err := o.repo.GetStockQty(ctx, item.Code, warehouse)
	if err != nil {
		return err
	}

	update := models.InventoryUpdate{
		ProductID: productID,
		Variants: []models.InventoryLevel{{
			ID:                  *item.RemoteVariantID,
			InventoryQuantity:   int(qty),
			InventoryManagement: models.InventoryManagement,
		}},
	}
	if err := o.remote.UpdateInventory(ctx, update); err != nil {
		return err
	}
	run.Record(reconcile.Action{Type: reconcile.ActionPushStock, Key: item.Code, RemoteID: productID})
	l.Info("Pushed stock", zap.Int64("remote_product_id", productID), zap.Int("quantity", int(qty)))
	return nil
}
