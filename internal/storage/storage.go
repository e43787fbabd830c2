// Package storage implements the two interchangeable storage backends (local
// disk and S3-compatible object storage) plus the filename and validation
// policies shared by both.
package storage

import (
	"context"
	"io"

	"github.com/shopora/storage-service/internal/models"
)

// Backend is the capability shared by the local and S3 implementations. A
// backend is constructed per request from a freshly resolved StorageConfig, so
// configuration changes take effect immediately.
type Backend interface {
	// Upload writes the object under folder/filename and returns the durable
	// public URL. size must be the exact byte count of reader.
	Upload(ctx context.Context, reader io.Reader, size int64, mimeType, folder, filename string) (string, error)

	// Delete removes the object addressed by a URL previously returned from
	// Upload (or minted by the presign path). Deleting an object that is
	// already absent is a no-op success: retries and duplicate delete calls
	// are expected.
	Delete(ctx context.Context, url string) error

	// Provider identifies which backend this is
	Provider() models.StorageProvider
}
