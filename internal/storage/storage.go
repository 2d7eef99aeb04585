package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jai-app/jai-backend/config"
)

var (
	// ErrBlobNotFound is returned when a key resolves to no stored object.
	ErrBlobNotFound = errors.New("blob not found")
)

// BlobStore is durable, streaming storage for uploaded file contents,
// addressed by an opaque generated key. Implementations must guarantee that
// a failed Put leaves nothing retrievable under the key, and Delete of a
// missing key is not an error.
type BlobStore interface {
	// Put streams r to durable storage under key. size is the expected byte
	// count; a short or long stream fails the write.
	Put(ctx context.Context, key string, r io.Reader, size int64) error

	// Open returns a streaming reader for the blob stored under key.
	// Returns ErrBlobNotFound if the key does not exist.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the blob. Deleting a non-existent key succeeds.
	Delete(ctx context.Context, key string) error

	// Ping verifies the backing medium is reachable. Called once at startup
	// before the store is handed to any handler.
	Ping(ctx context.Context) error
}

// NewFromConfig builds the configured BlobStore backend.
func NewFromConfig(cfg *config.StorageConfig) (BlobStore, error) {
	switch cfg.Backend {
	case "s3":
		return NewS3Store(cfg), nil
	case "filesystem":
		if cfg.LocalRoot == "" {
			return nil, fmt.Errorf("filesystem storage requires STORAGE_LOCAL_ROOT")
		}
		return NewFileSystemStore(cfg.LocalRoot)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}
