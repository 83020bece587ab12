// Package storage provides an abstraction layer for the object storage that
// holds namespace backups.
//
// It wraps the MinIO Go client, which works with both AWS S3 and self-hosted
// MinIO instances, behind the small Client interface used by the backup feature.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
