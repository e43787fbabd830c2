package models

// StorageProvider identifies one of the two interchangeable storage backends
type StorageProvider string

const (
	ProviderLocal StorageProvider = "local"
	ProviderS3    StorageProvider = "s3"
)

// StorageConfig is the resolved storage configuration. It is computed from the
// persisted settings rows on every read, never cached, because it is mutable
// admin state and a stale copy could route an upload to the wrong backend.
type StorageConfig struct {
	Provider         StorageProvider `json:"provider"`
	MaxFileSize      int64           `json:"maxFileSize"`
	AllowedFileTypes []string        `json:"allowedFileTypes"`

	// Local provider settings
	UploadPath string `json:"uploadPath"`
	BaseURL    string `json:"baseUrl"`

	// S3 provider settings. The secrets serialize only in the full view;
	// anything client-facing goes through Public() instead.
	S3AccessKey      string `json:"s3AccessKey,omitempty"`
	S3SecretKey      string `json:"s3SecretKey,omitempty"`
	S3Region         string `json:"s3Region"`
	S3Bucket         string `json:"s3Bucket"`
	S3Endpoint       string `json:"s3Endpoint,omitempty"`
	S3ForcePathStyle bool   `json:"s3ForcePathStyle"`
	S3CDNURL         string `json:"s3CdnUrl,omitempty"`
}

// PublicStorageConfig is the redacted view of StorageConfig: the S3 secrets are
// replaced by a single flag indicating whether credentials are present.
type PublicStorageConfig struct {
	Provider         StorageProvider `json:"provider"`
	MaxFileSize      int64           `json:"maxFileSize"`
	AllowedFileTypes []string        `json:"allowedFileTypes"`
	UploadPath       string          `json:"uploadPath"`
	BaseURL          string          `json:"baseUrl"`
	S3Region         string          `json:"s3Region"`
	S3Bucket         string          `json:"s3Bucket"`
	S3Endpoint       string          `json:"s3Endpoint,omitempty"`
	S3ForcePathStyle bool            `json:"s3ForcePathStyle"`
	S3CDNURL         string          `json:"s3CdnUrl,omitempty"`
	HasCredentials   bool            `json:"hasCredentials"`
}

// Public returns the redacted view of the configuration
func (c *StorageConfig) Public() *PublicStorageConfig {
	return &PublicStorageConfig{
		Provider:         c.Provider,
		MaxFileSize:      c.MaxFileSize,
		AllowedFileTypes: c.AllowedFileTypes,
		UploadPath:       c.UploadPath,
		BaseURL:          c.BaseURL,
		S3Region:         c.S3Region,
		S3Bucket:         c.S3Bucket,
		S3Endpoint:       c.S3Endpoint,
		S3ForcePathStyle: c.S3ForcePathStyle,
		S3CDNURL:         c.S3CDNURL,
		HasCredentials:   c.S3AccessKey != "" && c.S3SecretKey != "",
	}
}

// PresignedUpload is the result of minting a presigned upload URL. UploadURL is
// the time-boxed signed PUT target; DownloadURL is the durable public URL the
// object will have once the client completes the upload.
type PresignedUpload struct {
	UploadURL   string `json:"uploadUrl"`
	DownloadURL string `json:"downloadUrl"`
	Key         string `json:"key"`
	Filename    string `json:"filename"`
}

// ConnectionTestResult reports the outcome of a storage connection test.
// Failures are returned as a structured result rather than an error so the
// admin UI can render the specific diagnostic.
type ConnectionTestResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
