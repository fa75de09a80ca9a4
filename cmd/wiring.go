package cmd

import (
	"fmt"
	"time"

	"catalog-sync/core/config"
	"catalog-sync/core/database"
	"catalog-sync/core/logger"
	"catalog-sync/core/storage"
	"catalog-sync/feature/catalog"
	syncer "catalog-sync/feature/catalog/reconcile"
	"catalog-sync/feature/catalog/remote"
	"catalog-sync/feature/catalog/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// bootstrap loads the configuration and builds the application logger.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logg, nil
}

// connectDatabase opens the catalog database with SQL logging routed through zap.
func connectDatabase(cfg *config.Config, logg *zap.Logger) (*gorm.DB, error) {
	gormLogger := logger.NewGormLogger(logg, logger.GormLevel(cfg.Log.Level),
		logger.WithSlowThreshold(500*time.Millisecond),
		logger.WithIgnoreRecordNotFoundError(true),
	)
	return database.Connect(cfg.Database, database.WithLogger(gormLogger))
}

// catalogDeps holds the collaborators of the catalog sync.
type catalogDeps struct {
	remote syncer.RemoteCatalog
	files  syncer.FileStore
	prober syncer.ImageProber
}

// buildCatalogDeps creates the remote client, the attachment reader and the image
// prober. The remote catalog is nil when the platform is not configured; the
// attachment reader is nil without a storage client.
func buildCatalogDeps(cfg *config.Config, logg *zap.Logger, client storage.Client) (catalogDeps, error) {
	var deps catalogDeps
	if cfg.Platform.IsConfigured() {
		rc, err := remote.NewClient(cfg.Platform, logg)
		if err != nil {
			return deps, fmt.Errorf("failed to create platform client: %w", err)
		}
		deps.remote = rc
	}
	if client != nil {
		deps.files = catalog.NewBlobFiles(client, cfg.Storage)
	}
	deps.prober = remote.NewProber(time.Duration(cfg.Platform.TimeoutSeconds)*time.Second, logg)
	return deps, nil
}

// openCatalog connects, migrates and returns the catalog service used by the CLI.
func openCatalog(cfg *config.Config, logg *zap.Logger) (*catalog.Service, error) {
	db, err := connectDatabase(cfg, logg)
	if err != nil {
		return nil, fmt.Errorf("database connection required: %w", err)
	}
	if err := store.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate catalog tables: %w", err)
	}

	var client storage.Client
	if c, err := storage.NewClient(cfg.Storage); err != nil {
		logg.Warn("Storage unavailable, local images will not be uploaded", zap.Error(err))
	} else {
		client = c
	}

	deps, err := buildCatalogDeps(cfg, logg, client)
	if err != nil {
		return nil, err
	}
	if deps.remote == nil {
		return nil, fmt.Errorf("platform is not configured (PLATFORM_SHOP_URL, PLATFORM_ACCESS_TOKEN)")
	}
	return catalog.NewService(store.New(db), deps.remote, deps.files, deps.prober, cfg.Sync, logg), nil
}
