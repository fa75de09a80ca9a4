package catalog

import (
	syncer "catalog-sync/feature/catalog/reconcile"
	"catalog-sync/feature/catalog/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	enabled bool
}

// NewFeature creates a new Catalog feature. It stays disabled without a store
// or a remote catalog.
func NewFeature(st *store.Store, remote syncer.RemoteCatalog, files syncer.FileStore, prober syncer.ImageProber, cfg syncer.Config, logger *zap.Logger) *Feature {
	svc := NewService(st, remote, files, prober, cfg, logger)
	return &Feature{
		service: svc,
		handler: NewHandler(svc),
		enabled: st != nil && remote != nil,
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "catalog"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Service returns the feature's service.
func (f *Feature) Service() *Service {
	return f.service
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
