package catalog

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"catalog-sync/core/reconcile"
	"catalog-sync/core/storage"
	syncer "catalog-sync/feature/catalog/reconcile"

	"github.com/minio/minio-go/v7"
)

// BlobFiles reads ERP attachments from the object store. Private attachments
// live in the private bucket, public ones in the public bucket, keyed by the
// path after the files prefix.
type BlobFiles struct {
	client storage.Client
	cfg    storage.Config
}

// NewBlobFiles creates a BlobFiles.
func NewBlobFiles(client storage.Client, cfg storage.Config) *BlobFiles {
	return &BlobFiles{client: client, cfg: cfg}
}

// Locate maps an attachment reference to its bucket and object key.
func (b *BlobFiles) Locate(ref string) (bucket, key string, ok bool) {
	switch {
	case strings.HasPrefix(ref, syncer.PrivateFilesPrefix):
		return b.cfg.PrivateBucket, strings.TrimPrefix(ref, syncer.PrivateFilesPrefix), true
	case strings.HasPrefix(ref, syncer.PublicFilesPrefix):
		return b.cfg.PublicBucket, strings.TrimPrefix(ref, syncer.PublicFilesPrefix), true
	}
	return "", "", false
}

// Read returns the file name and content of an attachment.
func (b *BlobFiles) Read(ctx context.Context, ref string) (string, []byte, error) {
	bucket, key, ok := b.Locate(ref)
	if !ok || key == "" {
		return "", nil, reconcile.NewValidationError("image", "unsupported attachment reference %q", ref)
	}

	obj, err := b.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return "", nil, objectError(bucket, key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return "", nil, objectError(bucket, key, err)
	}
	return path.Base(key), data, nil
}

func objectError(bucket, key string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%s/%s: %w", bucket, key, reconcile.ErrNotFound)
	}
	return fmt.Errorf("failed to read %s/%s: %w", bucket, key, err)
}
