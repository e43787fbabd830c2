package storage

import (
	"fmt"
	"strings"

	"github.com/shopora/storage-service/internal/models"
)

// BuildS3PublicURL computes the durable public URL for an object key. Priority
// order: CDN base URL if configured, then custom endpoint plus bucket path,
// then the default bucket URL. ExtractS3KeyFromURL inverts the same priority
// order exactly so deletion-by-URL always recovers the key.
func BuildS3PublicURL(cfg *models.StorageConfig, key string) string {
	key = strings.TrimPrefix(key, "/")

	if cfg.S3CDNURL != "" {
		return normalizeBase(cfg.S3CDNURL) + "/" + key
	}

	if cfg.S3Endpoint != "" {
		return normalizeBase(cfg.S3Endpoint) + "/" + cfg.S3Bucket + "/" + key
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", cfg.S3Bucket, cfg.S3Region, key)
}

// ExtractS3KeyFromURL recovers the object key from a URL produced by
// BuildS3PublicURL under the same configuration. The query string (e.g. the
// signature of a presigned URL) is stripped before matching.
func ExtractS3KeyFromURL(cfg *models.StorageConfig, rawURL string) (string, bool) {
	// Strip the query string first: presigned URLs carry their signature there
	if i := strings.Index(rawURL, "?"); i >= 0 {
		rawURL = rawURL[:i]
	}

	if cfg.S3CDNURL != "" {
		if key, ok := strings.CutPrefix(rawURL, normalizeBase(cfg.S3CDNURL)+"/"); ok {
			return key, true
		}
	}

	if cfg.S3Endpoint != "" {
		if key, ok := strings.CutPrefix(rawURL, normalizeBase(cfg.S3Endpoint)+"/"+cfg.S3Bucket+"/"); ok {
			return key, true
		}
	}

	defaultBase := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", cfg.S3Bucket, cfg.S3Region)
	if key, ok := strings.CutPrefix(rawURL, defaultBase); ok {
		return key, true
	}

	return "", false
}

// normalizeBase ensures a scheme is present and trims any trailing slash
func normalizeBase(base string) string {
	base = strings.TrimRight(base, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	return base
}
