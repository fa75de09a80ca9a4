package catalog

import (
	"context"
	"fmt"

	"catalog-sync/core/reconcile"
	syncer "catalog-sync/feature/catalog/reconcile"
	"catalog-sync/feature/catalog/store"

	"go.uber.org/zap"
)

// Service runs catalog syncs against the local store.
type Service struct {
	store  *store.Store
	orch   *syncer.Orchestrator
	cfg    syncer.Config
	guard  *reconcile.Guard
	logger *zap.Logger
}

// NewService creates a new catalog service.
func NewService(st *store.Store, remote syncer.RemoteCatalog, files syncer.FileStore, prober syncer.ImageProber, cfg syncer.Config, logger *zap.Logger) *Service {
	return &Service{
		store:  st,
		orch:   syncer.NewOrchestrator(st, remote, files, prober, logger),
		cfg:    cfg,
		guard:  reconcile.NewGuard(),
		logger: logger,
	}
}

// StockRequest reports a stock movement of one item.
type StockRequest struct {
	ItemCode  string   `json:"item_code" validate:"required"`
	Warehouse string   `json:"warehouse"`
	Quantity  *float64 `json:"quantity,omitempty" validate:"omitempty,gte=0"`
}

func (s *Service) settings(ctx context.Context) (syncer.Settings, error) {
	last, err := s.store.LastSyncAt(ctx)
	if err != nil {
		return syncer.Settings{}, fmt.Errorf("failed to read last sync time: %w", err)
	}
	return s.cfg.Settings(last), nil
}

// run executes fn once per kind at a time and stamps the last sync time after a
// complete run that pushed local changes.
func (s *Service) run(ctx context.Context, kind string, stamp bool, fn func(context.Context, syncer.Settings) (*reconcile.RunResult, error)) (*reconcile.RunResult, error) {
	res, shared, err := s.guard.Do(ctx, kind, func(ctx context.Context) (*reconcile.RunResult, error) {
		settings, err := s.settings(ctx)
		if err != nil {
			return nil, err
		}
		res, err := fn(ctx, settings)
		if err != nil || !stamp || res.Status != reconcile.StatusComplete {
			return res, err
		}
		if err := s.store.SetLastSyncAt(ctx, res.FinishedAt); err != nil {
			return res, fmt.Errorf("failed to record sync time: %w", err)
		}
		return res, nil
	})
	if shared {
		s.logger.Debug("Joined running sync", zap.String("kind", kind))
	}
	return res, err
}

// SyncProducts pulls remote products, then pushes local changes.
func (s *Service) SyncProducts(ctx context.Context) (*reconcile.RunResult, error) {
	return s.run(ctx, syncer.KindProducts, true, s.orch.SyncProducts)
}

// PullProducts runs only the pull pass.
func (s *Service) PullProducts(ctx context.Context) (*reconcile.RunResult, error) {
	return s.run(ctx, syncer.KindPull, false, s.orch.PullProducts)
}

// PushProducts runs only the push pass.
func (s *Service) PushProducts(ctx context.Context) (*reconcile.RunResult, error) {
	return s.run(ctx, syncer.KindPush, true, s.orch.PushProducts)
}

// PushStock records the reported quantity, when present, and pushes it.
func (s *Service) PushStock(ctx context.Context, req StockRequest) (*reconcile.RunResult, error) {
	if req.Quantity != nil {
		warehouse := req.Warehouse
		if warehouse == "" {
			warehouse = s.cfg.Warehouse
		}
		if _, err := s.store.GetItem(ctx, req.ItemCode); err != nil {
			return nil, fmt.Errorf("item %s: %w", req.ItemCode, err)
		}
		if err := s.store.SetStockQty(ctx, req.ItemCode, warehouse, *req.Quantity); err != nil {
			return nil, err
		}
	}
	return s.run(ctx, syncer.KindStock+":"+req.ItemCode, false, func(ctx context.Context, settings syncer.Settings) (*reconcile.RunResult, error) {
		return s.orch.PushStock(ctx, settings, req.ItemCode, req.Warehouse)
	})
}

// PushAllStock pushes the quantity of every quantity-synced item.
func (s *Service) PushAllStock(ctx context.Context) (*reconcile.RunResult, error) {
	return s.run(ctx, syncer.KindStock, false, s.orch.PushAllStock)
}
