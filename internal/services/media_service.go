package services

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/shopora/storage-service/internal/models"
	"github.com/shopora/storage-service/internal/storage"
)

// MediaRepository defines the interface for media metadata data access
type MediaRepository interface {
	// Method Create inserts a new media record.
	Create(ctx context.Context, media *models.Media) error
	// Method GetByID retrieves a media record, optionally scoped to an owner.
	//
	// Records owned by another user come back as models.ErrNotFound.
	GetByID(ctx context.Context, id string, userID *int64) (*models.Media, error)
	// Method List retrieves media records matching the filter with the total count.
	List(ctx context.Context, filter models.MediaFilter) ([]*models.Media, int64, error)
	// Method Update writes the mutable metadata fields; nil fields keep their value.
	Update(ctx context.Context, id string, update models.MediaUpdate) error
	// Method DeleteByID deletes a media record.
	DeleteByID(ctx context.Context, id string) error
	// Method Stats aggregates the stored media.
	Stats(ctx context.Context) (*models.MediaStats, error)
}

// ConfigProvider resolves the active storage configuration. Implementations
// must read the persisted settings fresh on every call.
type ConfigProvider interface {
	GetConfig(ctx context.Context) (*models.StorageConfig, error)
}

// backendForProvider builds the backend for a given provider value. Deletion
// uses the provider recorded on the media row, not the active one, so objects
// remain deletable after the active provider changes.
func backendForProvider(ctx context.Context, provider models.StorageProvider, cfg *models.StorageConfig) (storage.Backend, error) {
	switch provider {
	case models.ProviderS3:
		return storage.NewS3Backend(ctx, cfg)
	case models.ProviderLocal:
		return storage.NewLocalBackend(cfg), nil
	default:
		return nil, models.NewConfigurationError("unknown storage provider %q", provider)
	}
}

// MediaService handles business logic for media metadata operations
type MediaService struct {
	repo    MediaRepository
	configs ConfigProvider
	logger  *zap.Logger
}

// NewMediaService creates a new media service
func NewMediaService(repo MediaRepository, configs ConfigProvider, logger *zap.Logger) *MediaService {
	return &MediaService{
		repo:    repo,
		configs: configs,
		logger:  logger,
	}
}

// Get retrieves a media record by ID, optionally scoped to an owner
func (s *MediaService) Get(ctx context.Context, id string, userID *int64) (*models.Media, error) {
	return s.repo.GetByID(ctx, id, userID)
}

// List retrieves a paginated media listing
func (s *MediaService) List(ctx context.Context, filter models.MediaFilter) (*models.MediaList, error) {
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	if items == nil {
		items = []*models.Media{}
	}

	return &models.MediaList{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

// Update modifies the descriptive metadata of a media record. The binary
// content is immutable once stored; replacing it means upload-new plus
// delete-old.
func (s *MediaService) Update(ctx context.Context, id string, userID *int64, update models.MediaUpdate) (*models.Media, error) {
	// Owner scoping happens on the read; a foreign record is a NotFound
	if _, err := s.repo.GetByID(ctx, id, userID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, update); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id, userID)
}

// Delete removes the physical object first and only then drops the metadata
// row, so a failed physical delete never leaves metadata pointing at nothing.
// A physical object that is already absent counts as removed.
func (s *MediaService) Delete(ctx context.Context, id string, userID *int64) error {
	media, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	cfg, err := s.configs.GetConfig(ctx)
	if err != nil {
		return err
	}

	// Route deletion by the provider recorded on the row, which may differ
	// from the currently active provider
	backend, err := backendForProvider(ctx, media.Provider, cfg)
	if err != nil {
		return err
	}

	if err := backend.Delete(ctx, media.URL); err != nil {
		s.logger.Error("failed to delete physical file",
			zap.String("id", id), zap.String("url", media.URL), zap.Error(err))
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return s.repo.DeleteByID(ctx, id)
}

// BulkDelete processes each id independently and reports which ids failed
// rather than aborting the whole batch on first failure.
func (s *MediaService) BulkDelete(ctx context.Context, ids []string, userID *int64) *models.BulkDeleteResult {
	result := &models.BulkDeleteResult{
		Deleted: []string{},
		Failed:  []string{},
	}

	for _, id := range ids {
		if err := s.Delete(ctx, id, userID); err != nil {
			s.logger.Warn("bulk delete: item failed",
				zap.String("id", id), zap.Error(err))
			result.Failed = append(result.Failed, id)
			continue
		}
		result.Deleted = append(result.Deleted, id)
	}

	return result
}

// Stats aggregates the stored media and formats the total size for humans
func (s *MediaService) Stats(ctx context.Context) (*models.MediaStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	stats.TotalSizeText = humanize.Bytes(uint64(stats.TotalSize))
	return stats, nil
}
