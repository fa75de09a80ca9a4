// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a narrow interface. The ERP keeps item
// attachments (product images) in two buckets: one for private files and one for
// public files. The catalog feature reads image bytes from them when pushing
// products, and the integrity feature verifies that both buckets exist.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to a bucket.
//   - MakeBucket: Creates a missing bucket.
//   - GetObject: Retrieves content as a stream.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.PublicBucket)
package storage
