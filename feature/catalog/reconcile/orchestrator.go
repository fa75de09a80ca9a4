package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"catalog-sync/core/logger"
	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/models"

	"go.uber.org/zap"
)

// Run kinds reported in RunResult.Kind.
const (
	KindProducts = "products"
	KindPull     = "pull"
	KindPush     = "push"
	KindStock    = "stock"
)

// Orchestrator runs the pull and push passes between the local store and the
// remote catalog.
type Orchestrator struct {
	repo   Repository
	remote RemoteCatalog
	files  FileStore
	prober ImageProber
	logger *zap.Logger
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(repo Repository, remote RemoteCatalog, files FileStore, prober ImageProber, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		repo:   repo,
		remote: remote,
		files:  files,
		prober: prober,
		logger: logger,
	}
}

// SyncProducts pulls every remote product and then pushes every local change
// since the last sync, skipping items touched by the pull.
func (o *Orchestrator) SyncProducts(ctx context.Context, s Settings) (*reconcile.RunResult, error) {
	return o.execute(ctx, KindProducts, s, func(ctx context.Context, run *reconcile.RunResult) error {
		touched := reconcile.NewTouchedSet()
		if err := o.Pull(ctx, s, touched, run); err != nil {
			return err
		}
		return o.Push(ctx, s, touched, run)
	})
}

// PullProducts runs the pull pass alone.
func (o *Orchestrator) PullProducts(ctx context.Context, s Settings) (*reconcile.RunResult, error) {
	return o.execute(ctx, KindPull, s, func(ctx context.Context, run *reconcile.RunResult) error {
		return o.Pull(ctx, s, reconcile.NewTouchedSet(), run)
	})
}

// PushProducts runs the push pass alone.
func (o *Orchestrator) PushProducts(ctx context.Context, s Settings) (*reconcile.RunResult, error) {
	return o.execute(ctx, KindPush, s, func(ctx context.Context, run *reconcile.RunResult) error {
		return o.Push(ctx, s, reconcile.NewTouchedSet(), run)
	})
}

func (o *Orchestrator) execute(ctx context.Context, kind string, s Settings, fn func(context.Context, *reconcile.RunResult) error) (*reconcile.RunResult, error) {
	run := reconcile.NewRun(kind)
	ctx = logger.ContextWithRunID(ctx, run.RunID)
	l := o.logger.With(zap.String("run_id", run.RunID), zap.String("kind", kind))

	if !s.Enabled {
		l.Info("Catalog sync is disabled")
		return run.Finish(reconcile.ErrSyncDisabled), reconcile.ErrSyncDisabled
	}

	l.Info("Starting catalog sync")
	err := fn(ctx, run)
	run.Finish(err)

	fields := []zap.Field{
		zap.String("status", string(run.Status)),
		zap.Int("actions", len(run.Actions)),
		zap.Int("failures", len(run.Failures)),
		zap.Duration("duration", run.FinishedAt.Sub(run.StartedAt)),
	}
	if err != nil {
		l.Error("Catalog sync aborted", append(fields, zap.Error(err))...)
		return run, err
	}
	l.Info("Catalog sync finished", fields...)
	return run, nil
}

// Pull creates or updates local items from every remote product. Each product is
// committed on its own; a validation failure skips the product, any other error
// aborts the pass.
func (o *Orchestrator) Pull(ctx context.Context, s Settings, touched *reconcile.TouchedSet, run *reconcile.RunResult) error {
	run.BeginPass(KindPull)

	products, err := o.remote.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list remote products: %w", err)
	}
	o.logger.Debug("Fetched remote products", zap.Int("count", len(products)))

	for i := range products {
		p := &products[i]
		run.Processed()
		key := strconv.FormatInt(p.ID, 10)

		if err := models.ValidateRemoteProduct(p); err != nil {
			o.skip(run, key, KindPull, err)
			continue
		}

		err := o.repo.Atomic(ctx, func(repo Repository) error {
			return NewComposer(repo, touched, run, o.logger).Inbound(ctx, p, s)
		})
		if reconcile.IsValidation(err) {
			o.skip(run, key, KindPull, err)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to pull product %d: %w", p.ID, err)
		}
	}
	return nil
}

// Push creates or replaces the remote product of every local template or
// standalone item modified since the last sync and not touched by the pull.
func (o *Orchestrator) Push(ctx context.Context, s Settings, touched *reconcile.TouchedSet, run *reconcile.RunResult) error {
	run.BeginPass(KindPush)

	items, err := o.repo.ListPushCandidates(ctx, s.LastSyncAt)
	if err != nil {
		return fmt.Errorf("failed to list push candidates: %w", err)
	}

	for i := range items {
		item := &items[i]
		if touched.Has(item.Code) {
			continue
		}
		run.Processed()

		err := o.pushItem(ctx, item, s, run)
		if reconcile.IsValidation(err) {
			o.skip(run, item.Code, KindPush, err)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to push item %s: %w", item.Code, err)
		}
	}
	return nil
}

// pushItem sends the full projection of item and writes returned ids back.
func (o *Orchestrator) pushItem(ctx context.Context, item *models.Item, s Settings, run *reconcile.RunResult) error {
	composer := NewComposer(o.repo, reconcile.NewTouchedSet(), run, o.logger)
	payload, children, err := composer.Outbound(ctx, item, s)
	if err != nil {
		return err
	}

	if item.IsSynced() {
		res, err := o.remote.ReplaceProduct(ctx, *item.RemoteProductID, payload)
		if err != nil {
			return err
		}
		if err := o.writeBack(ctx, item, children, res, false); err != nil {
			return err
		}
		run.Record(reconcile.Action{Type: reconcile.ActionReplaceRemote, Key: item.Code, RemoteID: *item.RemoteProductID})
	} else {
		res, err := o.remote.CreateProduct(ctx, payload)
		if err != nil {
			return err
		}
		if err := o.writeBack(ctx, item, children, res, true); err != nil {
			return err
		}
		run.Record(reconcile.Action{Type: reconcile.ActionCreateRemote, Key: item.Code, RemoteID: res.ID})
		o.logger.Info("Created remote product",
			zap.String("item_code", item.Code),
			zap.Int64("remote_product_id", res.ID),
		)
	}

	return o.syncImage(ctx, item, run)
}

// writeBack stores the ids returned by a create or replace. Children are matched
// to returned variants by position; on replace only children without a variant
// id are written.
func (o *Orchestrator) writeBack(ctx context.Context, item *models.Item, children []models.Item, res *models.RemoteProduct, created bool) error {
	if res == nil {
		return nil
	}
	return o.repo.Atomic(ctx, func(repo Repository) error {
		if created || !item.IsSynced() {
			var variantID int64
			if !item.IsTemplate && len(res.Variants) > 0 {
				variantID = res.Variants[0].ID
			}
			if err := repo.SetRemoteIDs(ctx, item.Code, res.ID, variantID); err != nil {
				return err
			}
			item.SetRemoteIDs(res.ID, variantID)
		} else if !item.IsTemplate && item.RemoteVariantID == nil && len(res.Variants) > 0 {
			if err := repo.SetRemoteIDs(ctx, item.Code, res.ID, res.Variants[0].ID); err != nil {
				return err
			}
			item.SetRemoteIDs(res.ID, res.Variants[0].ID)
		}

		for i := range children {
			if i >= len(res.Variants) {
				o.logger.Warn("Remote product returned fewer variants than sent",
					zap.String("item_code", item.Code),
					zap.Int("sent", len(children)),
					zap.Int("returned", len(res.Variants)),
				)
				break
			}
			child := &children[i]
			if !created && child.RemoteVariantID != nil {
				continue
			}
			if err := repo.SetRemoteIDs(ctx, child.Code, res.ID, res.Variants[i].ID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (o *Orchestrator) skip(run *reconcile.RunResult, key, stage string, err error) {
	run.Skip(key, stage, err)
	o.logger.Warn("Skipping record", zap.String("key", key), zap.String("stage", stage), zap.Error(err))
}

// isNotFound reports whether err is a local lookup miss.
func isNotFound(err error) bool {
	return errors.Is(err, reconcile.ErrNotFound)
}
