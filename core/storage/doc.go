// Package storage wraps the MinIO Go client behind a small Client interface.
//
// The catalog manager uses object storage to archive variant commit reports, so
// the interface only covers bucket checks, uploads, downloads and listings. It
// works against AWS S3 and self-hosted MinIO alike. Tests use core/storage/mocks.
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
