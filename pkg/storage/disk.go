// Package storage provides a small blob-disk abstraction with two drivers:
//   - "local": local filesystem (default)
//   - "s3": S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// The store's disk driver keeps one JSON object per key on a Disk:
//
//	disk, _ := storage.Open(ctx)           // STORAGE_DISK=local|s3
//	_ = disk.Put(ctx, "logimart_users.json", raw)
//	raw, err := disk.Get(ctx, "logimart_users.json")
//	if errors.Is(err, storage.ErrNotExist) { ... }
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/logimart/storefront/config"
)

// ErrNotExist is wrapped by Get when the object is missing.
var ErrNotExist = fs.ErrNotExist

// Disk is the blob driver interface. Every driver must implement this.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(ctx context.Context, path string, content []byte) error

	// Get returns the full content of the object at path.
	Get(ctx context.Context, path string) ([]byte, error)

	// Exists reports whether an object exists at path.
	Exists(ctx context.Context, path string) (bool, error)

	// Delete removes an object. Returns nil if it did not exist.
	Delete(ctx context.Context, path string) error

	// Files lists object paths directly inside directory.
	Files(ctx context.Context, directory string) ([]string, error)
}

// Open builds the disk named by STORAGE_DISK.
func Open(ctx context.Context) (Disk, error) {
	switch name := config.StorageDisk(); name {
	case "local":
		return NewLocal(config.StorageLocalRoot()), nil
	case "s3":
		return NewS3(ctx, S3Options{
			Bucket:   config.StorageS3Bucket(),
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
		})
	default:
		return nil, fmt.Errorf("storage: disk %q is not configured", name)
	}
}

// IsNotExist reports whether err means the object is missing.
func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotExist)
}
