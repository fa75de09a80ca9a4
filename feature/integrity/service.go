package integrity

import (
	"context"

	"catalog-sync/core/storage"
	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client  storage.Client
	storage storage.Config
	logger  *zap.Logger
	db      *gorm.DB
}

// NewService creates a new integrity service.
func NewService(client storage.Client, cfg storage.Config, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		client:  client,
		storage: cfg,
		logger:  logger,
		db:      db,
	}
}

// CheckSchema compares the catalog tables with their models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, models.All()...)
}

// CheckStorage returns the attachment buckets that do not exist.
func (s *Service) CheckStorage(ctx context.Context) ([]string, error) {
	return checks.CheckBuckets(ctx, s.client, s.storage.Buckets())
}

// FixStorage creates the missing buckets.
func (s *Service) FixStorage(ctx context.Context, missing []string) error {
	return checks.FixBuckets(ctx, s.client, s.storage.Region, s.logger, missing)
}
