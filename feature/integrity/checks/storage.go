package checks

import (
	"context"
	"fmt"

	"catalog-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// CheckBuckets returns the buckets that do not exist.
func CheckBuckets(ctx context.Context, client storage.Client, buckets []string) ([]string, error) {
	if client == nil {
		return nil, fmt.Errorf("storage client not configured")
	}
	missing := []string{}
	for _, bucket := range buckets {
		exists, err := client.BucketExists(ctx, bucket)
		if err != nil {
			return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
		}
		if !exists {
			missing = append(missing, bucket)
		}
	}
	return missing, nil
}

// FixBuckets creates the missing buckets.
func FixBuckets(ctx context.Context, client storage.Client, region string, logger *zap.Logger, missing []string) error {
	for _, bucket := range missing {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			logger.Error("Failed to create bucket", zap.String("bucket", bucket), zap.Error(err))
			return err
		}
		logger.Info("Created missing bucket", zap.String("bucket", bucket))
	}
	return nil
}
