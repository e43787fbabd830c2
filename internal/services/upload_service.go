package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopora/storage-service/internal/models"
	"github.com/shopora/storage-service/internal/storage"
)

const (
	// DefaultFolder groups uploads that specify no folder of their own
	DefaultFolder = "general"

	// MaxBatchFiles caps the synchronous multi-file upload endpoint
	MaxBatchFiles = 20

	// MaxGalleryFiles caps the gallery upload endpoint
	MaxGalleryFiles = 15

	// galleryMaxFileSize is the per-file cap for gallery uploads, distinct
	// from the general configurable limit
	galleryMaxFileSize = 10 << 20 // 10MB
)

// UploadInput describes one file to store
type UploadInput struct {
	Reader       io.Reader
	Size         int64
	MimeType     string
	OriginalName string
	Folder       string
	Alt          *string
	Caption      *string
	UserID       *int64
}

// PresignFileInput describes one file in a gallery presign request
type PresignFileInput struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

// ConfirmUploadInput converts a completed client-side presigned upload into a
// media record. The input is trusted as-is: confirm does not verify that the
// object actually exists in the bucket.
type ConfirmUploadInput struct {
	URL          string  `json:"url"`
	Filename     string  `json:"filename"`
	OriginalName string  `json:"originalName"`
	Size         int64   `json:"size"`
	MimeType     string  `json:"mimeType"`
	Folder       string  `json:"folder"`
	Alt          *string `json:"alt"`
	Caption      *string `json:"caption"`
	UserID       *int64  `json:"-"`
}

// UploadService composes validation, filename generation, the storage backends
// and the metadata store into the three upload flows.
type UploadService struct {
	repo    MediaRepository
	configs ConfigProvider
	logger  *zap.Logger
}

// NewUploadService creates a new upload service
func NewUploadService(repo MediaRepository, configs ConfigProvider, logger *zap.Logger) *UploadService {
	return &UploadService{
		repo:    repo,
		configs: configs,
		logger:  logger,
	}
}

// UploadSingle stores one file synchronously: validate, generate the storage
// name, write to the active backend, persist the metadata record.
func (s *UploadService) UploadSingle(ctx context.Context, input UploadInput) (*models.Media, error) {
	cfg, err := s.configs.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	return s.upload(ctx, cfg, input, cfg.MaxFileSize)
}

// UploadMultiple stores up to MaxBatchFiles files in request order. A failure
// partway through aborts the remaining files and returns the error.
func (s *UploadService) UploadMultiple(ctx context.Context, inputs []UploadInput) ([]*models.Media, error) {
	cfg, err := s.configs.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*models.Media, 0, len(inputs))
	for i, input := range inputs {
		media, err := s.upload(ctx, cfg, input, cfg.MaxFileSize)
		if err != nil {
			return nil, fmt.Errorf("file %d (%s): %w", i+1, input.OriginalName, err)
		}
		results = append(results, media)
	}

	return results, nil
}

// UploadGallery stores up to MaxGalleryFiles files with the stricter gallery
// per-file size cap. Like UploadMultiple it aborts on the first failure;
// gallery upload is not isolate-and-report.
func (s *UploadService) UploadGallery(ctx context.Context, inputs []UploadInput) ([]*models.Media, error) {
	cfg, err := s.configs.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	maxSize := cfg.MaxFileSize
	if maxSize > galleryMaxFileSize {
		maxSize = galleryMaxFileSize
	}

	results := make([]*models.Media, 0, len(inputs))
	for i, input := range inputs {
		media, err := s.upload(ctx, cfg, input, maxSize)
		if err != nil {
			return nil, fmt.Errorf("file %d (%s): %w", i+1, input.OriginalName, err)
		}
		results = append(results, media)
	}

	return results, nil
}

// upload is the shared single-file flow. Validation runs before any bytes are
// written, so a rejection never leaves a partial write behind.
func (s *UploadService) upload(ctx context.Context, cfg *models.StorageConfig, input UploadInput, maxSize int64) (*models.Media, error) {
	if err := storage.ValidateFile(input.Size, input.MimeType, cfg.AllowedFileTypes, maxSize); err != nil {
		return nil, err
	}

	folder := input.Folder
	if folder == "" {
		folder = DefaultFolder
	}
	if err := storage.ValidateFolder(folder); err != nil {
		return nil, err
	}

	backend, err := backendForProvider(ctx, cfg.Provider, cfg)
	if err != nil {
		return nil, err
	}

	filename := storage.GenerateFilename(input.OriginalName)

	url, err := backend.Upload(ctx, input.Reader, input.Size, input.MimeType, folder, filename)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	media := &models.Media{
		ID:           uuid.NewString(),
		Filename:     filename,
		OriginalName: input.OriginalName,
		URL:          url,
		MimeType:     input.MimeType,
		Type:         models.MediaTypeFromMIME(input.MimeType),
		Size:         input.Size,
		Folder:       folder,
		Provider:     backend.Provider(),
		Alt:          input.Alt,
		Caption:      input.Caption,
		UserID:       input.UserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, media); err != nil {
		// The physical file stays in place: surfacing the inconsistency is
		// preferable to silently rolling back a durable write
		s.logger.Error("metadata write failed after successful backend write",
			zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("failed to persist media metadata: %w", err)
	}

	return media, nil
}

// PresignSingle mints one presigned upload URL. It fails fast with a
// configuration error when the active provider is not S3, before any S3
// client is constructed.
func (s *UploadService) PresignSingle(ctx context.Context, originalName, contentType, folder string) (*models.PresignedUpload, error) {
	cfg, err := s.configs.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	if cfg.Provider != models.ProviderS3 {
		return nil, models.NewConfigurationError(
			"presigned uploads require the s3 provider; active provider is %q", cfg.Provider)
	}

	if folder == "" {
		folder = DefaultFolder
	}
	if err := storage.ValidateFolder(folder); err != nil {
		return nil, err
	}

	backend, err := storage.NewS3Backend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return backend.PresignUpload(ctx, originalName, contentType, folder, storage.DefaultPresignExpiry)
}

// PresignGallery issues independent presigned URLs for each file concurrently,
// preserving request order. There is no atomicity across the batch: each URL
// is minted independently and any subset may later be confirmed or abandoned.
func (s *UploadService) PresignGallery(ctx context.Context, files []PresignFileInput, folder string) ([]*models.PresignedUpload, error) {
	cfg, err := s.configs.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	if cfg.Provider != models.ProviderS3 {
		return nil, models.NewConfigurationError(
			"presigned uploads require the s3 provider; active provider is %q", cfg.Provider)
	}

	if folder == "" {
		folder = DefaultFolder
	}
	if err := storage.ValidateFolder(folder); err != nil {
		return nil, err
	}

	backend, err := storage.NewS3Backend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	results := make([]*models.PresignedUpload, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file PresignFileInput) {
			defer wg.Done()
			results[i], errs[i] = backend.PresignUpload(ctx, file.Filename, file.ContentType, folder, storage.DefaultPresignExpiry)
		}(i, file)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("file %d (%s): %w", i+1, files[i].Filename, err)
		}
	}

	return results, nil
}

// Confirm creates the media record for a completed client-side upload. Until
// confirm is called no metadata exists for the object; an upload the client
// never confirms leaves an orphaned object in the bucket, which is accepted
// and recoverable out of band.
func (s *UploadService) Confirm(ctx context.Context, input ConfirmUploadInput) (*models.Media, error) {
	cfg, err := s.configs.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	folder := input.Folder
	if folder == "" {
		folder = DefaultFolder
	}

	now := time.Now().UTC()
	media := &models.Media{
		ID:           uuid.NewString(),
		Filename:     input.Filename,
		OriginalName: input.OriginalName,
		URL:          input.URL,
		MimeType:     input.MimeType,
		Type:         models.MediaTypeFromMIME(input.MimeType),
		Size:         input.Size,
		Folder:       folder,
		Provider:     cfg.Provider,
		Alt:          input.Alt,
		Caption:      input.Caption,
		UserID:       input.UserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, media); err != nil {
		return nil, fmt.Errorf("failed to persist media metadata: %w", err)
	}

	return media, nil
}
