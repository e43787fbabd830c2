package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopora/storage-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockSettingsRepository is a mock implementation of SettingsRepository
type mockSettingsRepository struct {
	values    map[string]string
	getErr    error
	upsertErr error

	upserted map[string]string
}

func (m *mockSettingsRepository) GetByPrefix(ctx context.Context, prefix string) (map[string]string, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.values == nil {
		return map[string]string{}, nil
	}
	return m.values, nil
}

func (m *mockSettingsRepository) Upsert(ctx context.Context, values map[string]string) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = values
	return nil
}

func TestSettingsService_GetConfig(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		check  func(t *testing.T, cfg *models.StorageConfig)
	}{
		{
			name:   "empty settings yield defaults",
			values: map[string]string{},
			check: func(t *testing.T, cfg *models.StorageConfig) {
				assert.Equal(t, models.ProviderLocal, cfg.Provider)
				assert.Equal(t, int64(50<<20), cfg.MaxFileSize)
				assert.Equal(t, "uploads", cfg.UploadPath)
				assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
				assert.Empty(t, cfg.AllowedFileTypes)
			},
		},
		{
			name: "s3 provider with settings",
			values: map[string]string{
				"storage.provider":      "s3",
				"storage.s3.access_key": "AKIA123",
				"storage.s3.secret_key": "secret",
				"storage.s3.region":     "eu-central-1",
				"storage.s3.bucket":     "media",
			},
			check: func(t *testing.T, cfg *models.StorageConfig) {
				assert.Equal(t, models.ProviderS3, cfg.Provider)
				assert.Equal(t, "AKIA123", cfg.S3AccessKey)
				assert.Equal(t, "media", cfg.S3Bucket)
			},
		},
		{
			name:   "unknown provider falls back to local",
			values: map[string]string{"storage.provider": "ftp"},
			check: func(t *testing.T, cfg *models.StorageConfig) {
				assert.Equal(t, models.ProviderLocal, cfg.Provider)
			},
		},
		{
			name:   "invalid max file size falls back to default",
			values: map[string]string{"storage.max_file_size": "not-a-number"},
			check: func(t *testing.T, cfg *models.StorageConfig) {
				assert.Equal(t, int64(50<<20), cfg.MaxFileSize)
			},
		},
		{
			name:   "non-positive max file size falls back to default",
			values: map[string]string{"storage.max_file_size": "-5"},
			check: func(t *testing.T, cfg *models.StorageConfig) {
				assert.Equal(t, int64(50<<20), cfg.MaxFileSize)
			},
		},
		{
			name:   "valid max file size is used",
			values: map[string]string{"storage.max_file_size": "1048576"},
			check: func(t *testing.T, cfg *models.StorageConfig) {
				assert.Equal(t, int64(1<<20), cfg.MaxFileSize)
			},
		},
		{
			name:   "malformed allow list falls back to image defaults",
			values: map[string]string{"storage.allowed_file_types": "{not json"},
			check: func(t *testing.T, cfg *models.StorageConfig) {
				assert.Equal(t, []string{"image/jpeg", "image/png", "image/gif", "image/webp"}, cfg.AllowedFileTypes)
			},
		},
		{
			name:   "explicit empty allow list means no restriction",
			values: map[string]string{"storage.allowed_file_types": "[]"},
			check: func(t *testing.T, cfg *models.StorageConfig) {
				assert.Empty(t, cfg.AllowedFileTypes)
			},
		},
		{
			name: "force path style is parsed",
			values: map[string]string{
				"storage.s3.force_path_style": "true",
			},
			check: func(t *testing.T, cfg *models.StorageConfig) {
				assert.True(t, cfg.S3ForcePathStyle)
			},
		},
		{
			name: "malformed force path style stays disabled",
			values: map[string]string{
				"storage.s3.force_path_style": "yes please",
			},
			check: func(t *testing.T, cfg *models.StorageConfig) {
				assert.False(t, cfg.S3ForcePathStyle)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockSettingsRepository{values: tt.values}
			svc := NewSettingsService(repo, zap.NewNop())

			cfg, err := svc.GetConfig(context.Background())

			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestSettingsService_GetConfig_RepositoryError(t *testing.T) {
	repo := &mockSettingsRepository{getErr: errors.New("database error")}
	svc := NewSettingsService(repo, zap.NewNop())

	_, err := svc.GetConfig(context.Background())

	assert.Error(t, err)
}

func TestSettingsService_GetPublicConfig(t *testing.T) {
	repo := &mockSettingsRepository{values: map[string]string{
		"storage.provider":      "s3",
		"storage.s3.access_key": "AKIA123",
		"storage.s3.secret_key": "secret",
		"storage.s3.bucket":     "media",
	}}
	svc := NewSettingsService(repo, zap.NewNop())

	cfg, err := svc.GetPublicConfig(context.Background())

	require.NoError(t, err)
	assert.True(t, cfg.HasCredentials)
	assert.Equal(t, "media", cfg.S3Bucket)
}

func TestSettingsService_GetPublicConfig_NoCredentials(t *testing.T) {
	repo := &mockSettingsRepository{}
	svc := NewSettingsService(repo, zap.NewNop())

	cfg, err := svc.GetPublicConfig(context.Background())

	require.NoError(t, err)
	assert.False(t, cfg.HasCredentials)
}

func TestSettingsService_UpdateSettings(t *testing.T) {
	t.Run("writes only the provided keys", func(t *testing.T) {
		repo := &mockSettingsRepository{}
		svc := NewSettingsService(repo, zap.NewNop())

		size := int64(1 << 20)
		err := svc.UpdateSettings(context.Background(), UpdateStorageSettingsInput{
			Provider:    "s3",
			MaxFileSize: &size,
			S3SecretKey: "rotated-secret",
		})

		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"storage.provider":      "s3",
			"storage.max_file_size": "1048576",
			"storage.s3.secret_key": "rotated-secret",
		}, repo.upserted)
	})

	t.Run("empty input is a no-op", func(t *testing.T) {
		repo := &mockSettingsRepository{}
		svc := NewSettingsService(repo, zap.NewNop())

		err := svc.UpdateSettings(context.Background(), UpdateStorageSettingsInput{})

		require.NoError(t, err)
		assert.Nil(t, repo.upserted)
	})

	t.Run("nil allow list is untouched, empty list is written", func(t *testing.T) {
		repo := &mockSettingsRepository{}
		svc := NewSettingsService(repo, zap.NewNop())

		err := svc.UpdateSettings(context.Background(), UpdateStorageSettingsInput{
			AllowedFileTypes: []string{},
		})

		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"storage.allowed_file_types": "[]",
		}, repo.upserted)
	})

	t.Run("unknown provider is rejected", func(t *testing.T) {
		repo := &mockSettingsRepository{}
		svc := NewSettingsService(repo, zap.NewNop())

		err := svc.UpdateSettings(context.Background(), UpdateStorageSettingsInput{Provider: "ftp"})

		var validationErr *models.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Nil(t, repo.upserted)
	})

	t.Run("non-positive max file size is rejected", func(t *testing.T) {
		repo := &mockSettingsRepository{}
		svc := NewSettingsService(repo, zap.NewNop())

		size := int64(0)
		err := svc.UpdateSettings(context.Background(), UpdateStorageSettingsInput{MaxFileSize: &size})

		var validationErr *models.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestSettingsService_TestConnection(t *testing.T) {
	t.Run("local probe succeeds in a writable directory", func(t *testing.T) {
		chdir(t, t.TempDir())

		repo := &mockSettingsRepository{}
		svc := NewSettingsService(repo, zap.NewNop())

		result, err := svc.TestConnection(context.Background(), TestConnectionInput{})

		require.NoError(t, err)
		assert.True(t, result.Success)
	})

	t.Run("missing s3 settings come back as a diagnostic", func(t *testing.T) {
		repo := &mockSettingsRepository{values: map[string]string{"storage.provider": "s3"}}
		svc := NewSettingsService(repo, zap.NewNop())

		result, err := svc.TestConnection(context.Background(), TestConnectionInput{})

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.NotEmpty(t, result.Message)
	})

	t.Run("unknown override provider is a diagnostic", func(t *testing.T) {
		repo := &mockSettingsRepository{}
		svc := NewSettingsService(repo, zap.NewNop())

		result, err := svc.TestConnection(context.Background(), TestConnectionInput{Provider: "ftp"})

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Contains(t, result.Message, "ftp")
	})
}
