package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopora/storage-service/internal/models"
)

// LocalBackend stores objects on the local filesystem under the configured
// upload path and serves them through the static file endpoint.
type LocalBackend struct {
	uploadPath string
	baseURL    string
}

// NewLocalBackend creates a local backend from the resolved storage config
func NewLocalBackend(cfg *models.StorageConfig) *LocalBackend {
	return &LocalBackend{
		uploadPath: strings.Trim(cfg.UploadPath, "/"),
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// Provider identifies this backend as the local one
func (b *LocalBackend) Provider() models.StorageProvider {
	return models.ProviderLocal
}

// FilePath resolves the on-disk path for folder/filename relative to the
// process working directory.
func (b *LocalBackend) FilePath(folder, filename string) string {
	return filepath.Join(b.uploadPath, folder, filename)
}

// Upload writes the object under {uploadPath}/{folder}/{filename}, creating
// the directory tree if absent, and returns the HTTP-servable URL.
func (b *LocalBackend) Upload(ctx context.Context, reader io.Reader, size int64, mimeType, folder, filename string) (string, error) {
	// The orchestrator validates the folder too, but the backend is the last
	// line of defense against writes escaping the upload root.
	if err := ValidateFolder(folder); err != nil {
		return "", err
	}

	path := b.FilePath(folder, filename)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", &models.ExternalServiceError{Op: "create upload directory", Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", &models.ExternalServiceError{Op: "create file", Err: err}
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		// Remove the partial file so a failed write leaves nothing behind
		os.Remove(path)
		return "", &models.ExternalServiceError{Op: "write file", Err: err}
	}

	return fmt.Sprintf("%s/%s/%s/%s", b.baseURL, b.uploadPath, folder, filename), nil
}

// Delete parses the stored URL back into a filesystem path and unlinks it.
// A path that is already absent is treated as success, never an error.
func (b *LocalBackend) Delete(ctx context.Context, url string) error {
	path, err := b.pathFromURL(url)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return &models.ExternalServiceError{Op: "delete file", Err: err}
	}

	return nil
}

// pathFromURL inverts the URL construction in Upload
func (b *LocalBackend) pathFromURL(url string) (string, error) {
	rel, found := strings.CutPrefix(url, b.baseURL+"/")
	if !found {
		return "", fmt.Errorf("url %q does not belong to this local backend", url)
	}

	// Reject anything that would escape the upload root
	rel = filepath.Clean(rel)
	if !strings.HasPrefix(rel, b.uploadPath+string(filepath.Separator)) {
		return "", fmt.Errorf("url %q resolves outside the upload path", url)
	}

	return rel, nil
}
