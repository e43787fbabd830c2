// Package services implements the storage configuration provider, the media
// metadata store and the upload orchestrators.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/shopora/storage-service/internal/models"
	"github.com/shopora/storage-service/internal/storage"
)

// Setting names under the storage namespace. All storage configuration lives
// in the settings table so it is runtime-reconfigurable without a redeploy.
const (
	keyProvider         = "storage.provider"
	keyMaxFileSize      = "storage.max_file_size"
	keyAllowedFileTypes = "storage.allowed_file_types"
	keyLocalUploadPath  = "storage.local.upload_path"
	keyLocalBaseURL     = "storage.local.base_url"
	keyS3AccessKey      = "storage.s3.access_key"
	keyS3SecretKey      = "storage.s3.secret_key"
	keyS3Region         = "storage.s3.region"
	keyS3Bucket         = "storage.s3.bucket"
	keyS3Endpoint       = "storage.s3.endpoint"
	keyS3ForcePathStyle = "storage.s3.force_path_style"
	keyS3CDNURL         = "storage.s3.cdn_url"
)

const (
	settingsPrefix     = "storage."
	defaultMaxFileSize = 50 << 20 // 50MB
	defaultUploadPath  = "uploads"
	defaultBaseURL     = "http://localhost:8080"
)

// defaultAllowedTypes is the safe fallback when the persisted allow-list is
// malformed.
var defaultAllowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// SettingsRepository defines the interface for settings data access
type SettingsRepository interface {
	// Method GetByPrefix returns all settings whose name starts with prefix.
	GetByPrefix(ctx context.Context, prefix string) (map[string]string, error)
	// Method Upsert writes the given settings, inserting or overwriting each key.
	Upsert(ctx context.Context, values map[string]string) error
}

// UpdateStorageSettingsInput carries a sparse settings update: omitted or
// empty fields are left untouched, so an admin can rotate one secret without
// resupplying the rest.
type UpdateStorageSettingsInput struct {
	Provider         string   `json:"provider"`
	MaxFileSize      *int64   `json:"maxFileSize"`
	AllowedFileTypes []string `json:"allowedFileTypes"`
	UploadPath       string   `json:"uploadPath"`
	BaseURL          string   `json:"baseUrl"`
	S3AccessKey      string   `json:"s3AccessKey"`
	S3SecretKey      string   `json:"s3SecretKey"`
	S3Region         string   `json:"s3Region"`
	S3Bucket         string   `json:"s3Bucket"`
	S3Endpoint       string   `json:"s3Endpoint"`
	S3ForcePathStyle *bool    `json:"s3ForcePathStyle"`
	S3CDNURL         string   `json:"s3CdnUrl"`
}

// TestConnectionInput optionally overrides the saved configuration for a
// connection test. Empty fields fall back to the saved values.
type TestConnectionInput struct {
	Provider    string `json:"provider"`
	S3AccessKey string `json:"s3AccessKey"`
	S3SecretKey string `json:"s3SecretKey"`
	S3Region    string `json:"s3Region"`
	S3Bucket    string `json:"s3Bucket"`
	S3Endpoint  string `json:"s3Endpoint"`
}

// SettingsService resolves the active storage configuration from the persisted
// settings rows. The configuration is read fresh on every call, never cached,
// because it is mutable admin state.
type SettingsService struct {
	repo   SettingsRepository
	logger *zap.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(repo SettingsRepository, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		repo:   repo,
		logger: logger,
	}
}

// GetConfig resolves the full storage configuration, secrets included.
// Internal use only; handlers expose GetPublicConfig instead.
func (s *SettingsService) GetConfig(ctx context.Context) (*models.StorageConfig, error) {
	values, err := s.repo.GetByPrefix(ctx, settingsPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage settings: %w", err)
	}

	cfg := &models.StorageConfig{
		Provider:         models.ProviderLocal,
		MaxFileSize:      defaultMaxFileSize,
		UploadPath:       defaultUploadPath,
		BaseURL:          defaultBaseURL,
		S3AccessKey:      values[keyS3AccessKey],
		S3SecretKey:      values[keyS3SecretKey],
		S3Region:         values[keyS3Region],
		S3Bucket:         values[keyS3Bucket],
		S3Endpoint:       values[keyS3Endpoint],
		S3CDNURL:         values[keyS3CDNURL],
		AllowedFileTypes: []string{},
	}

	// Unknown or missing provider defaults to local
	if values[keyProvider] == string(models.ProviderS3) {
		cfg.Provider = models.ProviderS3
	}

	if raw := values[keyMaxFileSize]; raw != "" {
		size, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || size <= 0 {
			s.logger.Warn("invalid max file size setting, using default",
				zap.String("value", raw), zap.Int64("default", int64(defaultMaxFileSize)))
		} else {
			cfg.MaxFileSize = size
		}
	}

	// A malformed allow-list is not fatal: fall back to the image defaults.
	// An empty list means no MIME restriction at all.
	if raw := values[keyAllowedFileTypes]; raw != "" {
		var types []string
		if err := json.Unmarshal([]byte(raw), &types); err != nil {
			s.logger.Warn("malformed allowed file types setting, falling back to image defaults",
				zap.String("value", raw), zap.Error(err))
			types = defaultAllowedTypes
		}
		cfg.AllowedFileTypes = types
	}

	if v := values[keyLocalUploadPath]; v != "" {
		cfg.UploadPath = v
	}
	if v := values[keyLocalBaseURL]; v != "" {
		cfg.BaseURL = v
	}
	if v := values[keyS3ForcePathStyle]; v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			s.logger.Warn("invalid force path style setting, leaving disabled",
				zap.String("value", v))
		} else {
			cfg.S3ForcePathStyle = enabled
		}
	}

	return cfg, nil
}

// GetPublicConfig resolves the storage configuration with secrets replaced by
// a "has credentials" flag.
func (s *SettingsService) GetPublicConfig(ctx context.Context) (*models.PublicStorageConfig, error) {
	cfg, err := s.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	return cfg.Public(), nil
}

// UpdateSettings writes only the keys provided in the input. Omitted or empty
// fields are left untouched, not cleared. The settings rows are written
// last-write-wins without locking: configuration changes are rare and
// administrator-only.
func (s *SettingsService) UpdateSettings(ctx context.Context, input UpdateStorageSettingsInput) error {
	values := make(map[string]string)

	if input.Provider != "" {
		if input.Provider != string(models.ProviderLocal) && input.Provider != string(models.ProviderS3) {
			return models.NewValidationError("unknown storage provider %q", input.Provider)
		}
		values[keyProvider] = input.Provider
	}
	if input.MaxFileSize != nil {
		if *input.MaxFileSize <= 0 {
			return models.NewValidationError("max file size must be positive")
		}
		values[keyMaxFileSize] = strconv.FormatInt(*input.MaxFileSize, 10)
	}
	if input.AllowedFileTypes != nil {
		encoded, err := json.Marshal(input.AllowedFileTypes)
		if err != nil {
			return fmt.Errorf("failed to encode allowed file types: %w", err)
		}
		values[keyAllowedFileTypes] = string(encoded)
	}
	if input.UploadPath != "" {
		values[keyLocalUploadPath] = input.UploadPath
	}
	if input.BaseURL != "" {
		values[keyLocalBaseURL] = input.BaseURL
	}
	if input.S3AccessKey != "" {
		values[keyS3AccessKey] = input.S3AccessKey
	}
	if input.S3SecretKey != "" {
		values[keyS3SecretKey] = input.S3SecretKey
	}
	if input.S3Region != "" {
		values[keyS3Region] = input.S3Region
	}
	if input.S3Bucket != "" {
		values[keyS3Bucket] = input.S3Bucket
	}
	if input.S3Endpoint != "" {
		values[keyS3Endpoint] = input.S3Endpoint
	}
	if input.S3ForcePathStyle != nil {
		values[keyS3ForcePathStyle] = strconv.FormatBool(*input.S3ForcePathStyle)
	}
	if input.S3CDNURL != "" {
		values[keyS3CDNURL] = input.S3CDNURL
	}

	if len(values) == 0 {
		return nil
	}

	if err := s.repo.Upsert(ctx, values); err != nil {
		return fmt.Errorf("failed to update storage settings: %w", err)
	}

	s.logger.Info("storage settings updated", zap.Int("keys", len(values)))
	return nil
}

// TestConnection probes the configured (or caller-overridden) backend.
// Failures come back as a structured result with a plain-language diagnostic,
// never as an error, so the admin UI can render something specific.
func (s *SettingsService) TestConnection(ctx context.Context, input TestConnectionInput) (models.ConnectionTestResult, error) {
	cfg, err := s.GetConfig(ctx)
	if err != nil {
		return models.ConnectionTestResult{}, err
	}

	provider := cfg.Provider
	if input.Provider != "" {
		provider = models.StorageProvider(input.Provider)
	}

	switch provider {
	case models.ProviderLocal:
		return s.testLocal(cfg), nil
	case models.ProviderS3:
		return s.testS3(ctx, cfg, input), nil
	default:
		return models.ConnectionTestResult{
			Success: false,
			Message: fmt.Sprintf("unknown storage provider %q", provider),
		}, nil
	}
}

// testLocal writes and deletes a probe file under the upload path
func (s *SettingsService) testLocal(cfg *models.StorageConfig) models.ConnectionTestResult {
	if err := os.MkdirAll(cfg.UploadPath, 0755); err != nil {
		return models.ConnectionTestResult{
			Success: false,
			Message: fmt.Sprintf("cannot create upload directory %q: %v", cfg.UploadPath, err),
		}
	}

	probe := filepath.Join(cfg.UploadPath, ".connection-probe")
	if err := os.WriteFile(probe, []byte("probe"), 0644); err != nil {
		return models.ConnectionTestResult{
			Success: false,
			Message: fmt.Sprintf("upload directory %q is not writable: %v", cfg.UploadPath, err),
		}
	}
	os.Remove(probe)

	return models.ConnectionTestResult{
		Success: true,
		Message: fmt.Sprintf("upload directory %q is writable", cfg.UploadPath),
	}
}

// testS3 issues a HeadBucket with caller-supplied credentials falling back to
// the saved ones
func (s *SettingsService) testS3(ctx context.Context, cfg *models.StorageConfig, input TestConnectionInput) models.ConnectionTestResult {
	merged := *cfg
	if input.S3AccessKey != "" {
		merged.S3AccessKey = input.S3AccessKey
	}
	if input.S3SecretKey != "" {
		merged.S3SecretKey = input.S3SecretKey
	}
	if input.S3Region != "" {
		merged.S3Region = input.S3Region
	}
	if input.S3Bucket != "" {
		merged.S3Bucket = input.S3Bucket
	}
	if input.S3Endpoint != "" {
		merged.S3Endpoint = input.S3Endpoint
	}

	backend, err := storage.NewS3Backend(ctx, &merged)
	if err != nil {
		var cfgErr *models.ConfigurationError
		if errors.As(err, &cfgErr) {
			return models.ConnectionTestResult{Success: false, Message: cfgErr.Message}
		}
		return models.ConnectionTestResult{Success: false, Message: err.Error()}
	}

	return backend.TestConnection(ctx)
}
