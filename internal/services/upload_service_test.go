package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopora/storage-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func uploadTestConfig() *models.StorageConfig {
	cfg := localConfig()
	cfg.AllowedFileTypes = []string{"image/jpeg", "image/png", "text/plain"}
	return cfg
}

func textInput(name, content string) UploadInput {
	return UploadInput{
		Reader:       strings.NewReader(content),
		Size:         int64(len(content)),
		MimeType:     "text/plain",
		OriginalName: name,
	}
}

func TestUploadService_UploadSingle(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		chdir(t, t.TempDir())

		repo := &mockMediaRepository{}
		svc := NewUploadService(repo, &mockConfigProvider{cfg: uploadTestConfig()}, zap.NewNop())

		media, err := svc.UploadSingle(context.Background(), textInput("notes.txt", "hello"))

		require.NoError(t, err)
		assert.NotEmpty(t, media.ID)
		assert.Regexp(t, `^notes-\d+-[0-9a-f]{16}\.txt$`, media.Filename)
		assert.Equal(t, "notes.txt", media.OriginalName)
		assert.Equal(t, models.MediaTypeDocument, media.Type)
		assert.Equal(t, DefaultFolder, media.Folder)
		assert.Equal(t, models.ProviderLocal, media.Provider)
		assert.Contains(t, media.URL, "http://localhost:8080/uploads/general/")
		require.Len(t, repo.created, 1)

		// The bytes landed on disk
		content, err := os.ReadFile(filepath.Join("uploads", "general", media.Filename))
		require.NoError(t, err)
		assert.Equal(t, "hello", string(content))
	})

	t.Run("validation rejects before any write", func(t *testing.T) {
		chdir(t, t.TempDir())

		repo := &mockMediaRepository{}
		svc := NewUploadService(repo, &mockConfigProvider{cfg: uploadTestConfig()}, zap.NewNop())

		input := textInput("big.txt", "hello")
		input.Size = 51 << 20

		_, err := svc.UploadSingle(context.Background(), input)

		var validationErr *models.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Empty(t, repo.created)
		_, statErr := os.Stat("uploads")
		assert.True(t, os.IsNotExist(statErr), "nothing should be written for a rejected file")
	})

	t.Run("disallowed type is rejected", func(t *testing.T) {
		chdir(t, t.TempDir())

		repo := &mockMediaRepository{}
		svc := NewUploadService(repo, &mockConfigProvider{cfg: uploadTestConfig()}, zap.NewNop())

		input := textInput("page.html", "<html>")
		input.MimeType = "text/html"

		_, err := svc.UploadSingle(context.Background(), input)

		var validationErr *models.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("traversal folder is rejected before any write", func(t *testing.T) {
		chdir(t, t.TempDir())

		repo := &mockMediaRepository{}
		svc := NewUploadService(repo, &mockConfigProvider{cfg: uploadTestConfig()}, zap.NewNop())

		input := textInput("evil.txt", "owned")
		input.Folder = "../../escaped"

		_, err := svc.UploadSingle(context.Background(), input)

		var validationErr *models.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Empty(t, repo.created)
		_, statErr := os.Stat("uploads")
		assert.True(t, os.IsNotExist(statErr), "nothing should be written for a rejected folder")
	})

	t.Run("metadata failure leaves the physical file in place", func(t *testing.T) {
		chdir(t, t.TempDir())

		repo := &mockMediaRepository{createErr: errors.New("database error")}
		svc := NewUploadService(repo, &mockConfigProvider{cfg: uploadTestConfig()}, zap.NewNop())

		_, err := svc.UploadSingle(context.Background(), textInput("notes.txt", "hello"))

		assert.Error(t, err)

		entries, readErr := os.ReadDir(filepath.Join("uploads", "general"))
		require.NoError(t, readErr)
		assert.Len(t, entries, 1, "the durable write must not be rolled back")
	})
}

func TestUploadService_UploadMultiple(t *testing.T) {
	t.Run("stores files in request order", func(t *testing.T) {
		chdir(t, t.TempDir())

		repo := &mockMediaRepository{}
		svc := NewUploadService(repo, &mockConfigProvider{cfg: uploadTestConfig()}, zap.NewNop())

		results, err := svc.UploadMultiple(context.Background(), []UploadInput{
			textInput("a.txt", "one"),
			textInput("b.txt", "two"),
		})

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "a.txt", results[0].OriginalName)
		assert.Equal(t, "b.txt", results[1].OriginalName)
	})

	t.Run("aborts on the first failure", func(t *testing.T) {
		chdir(t, t.TempDir())

		repo := &mockMediaRepository{}
		svc := NewUploadService(repo, &mockConfigProvider{cfg: uploadTestConfig()}, zap.NewNop())

		bad := textInput("big.txt", "x")
		bad.Size = 51 << 20

		results, err := svc.UploadMultiple(context.Background(), []UploadInput{
			bad,
			textInput("b.txt", "two"),
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "file 1 (big.txt)")
		assert.Nil(t, results)
		assert.Empty(t, repo.created, "later files must not be processed after a failure")
	})
}

func TestUploadService_UploadGallery(t *testing.T) {
	t.Run("applies the stricter gallery size cap", func(t *testing.T) {
		chdir(t, t.TempDir())

		repo := &mockMediaRepository{}
		svc := NewUploadService(repo, &mockConfigProvider{cfg: uploadTestConfig()}, zap.NewNop())

		// Under the general 50MB limit but over the 10MB gallery cap
		input := textInput("big.txt", "x")
		input.Size = 11 << 20

		_, err := svc.UploadGallery(context.Background(), []UploadInput{input})

		var validationErr *models.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("small files pass", func(t *testing.T) {
		chdir(t, t.TempDir())

		repo := &mockMediaRepository{}
		svc := NewUploadService(repo, &mockConfigProvider{cfg: uploadTestConfig()}, zap.NewNop())

		results, err := svc.UploadGallery(context.Background(), []UploadInput{
			textInput("a.txt", "one"),
		})

		require.NoError(t, err)
		assert.Len(t, results, 1)
	})
}

func TestUploadService_PresignSingle(t *testing.T) {
	t.Run("fails fast when the provider is not s3", func(t *testing.T) {
		svc := NewUploadService(&mockMediaRepository{}, &mockConfigProvider{cfg: uploadTestConfig()}, zap.NewNop())

		_, err := svc.PresignSingle(context.Background(), "photo.jpg", "image/jpeg", "")

		var cfgErr *models.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Contains(t, cfgErr.Message, "local")
	})

	t.Run("missing s3 settings are reported", func(t *testing.T) {
		cfg := uploadTestConfig()
		cfg.Provider = models.ProviderS3

		svc := NewUploadService(&mockMediaRepository{}, &mockConfigProvider{cfg: cfg}, zap.NewNop())

		_, err := svc.PresignSingle(context.Background(), "photo.jpg", "image/jpeg", "")

		var cfgErr *models.ConfigurationError
		assert.ErrorAs(t, err, &cfgErr)
	})
}

func TestUploadService_Confirm(t *testing.T) {
	t.Run("records metadata for the reported upload", func(t *testing.T) {
		repo := &mockMediaRepository{}
		svc := NewUploadService(repo, &mockConfigProvider{cfg: uploadTestConfig()}, zap.NewNop())

		media, err := svc.Confirm(context.Background(), ConfirmUploadInput{
			URL:          "https://media.s3.eu-central-1.amazonaws.com/general/photo-123-abc.jpg",
			Filename:     "photo-123-abc.jpg",
			OriginalName: "photo.jpg",
			Size:         2048,
			MimeType:     "image/jpeg",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, media.ID)
		assert.Equal(t, models.MediaTypeImage, media.Type)
		assert.Equal(t, DefaultFolder, media.Folder)
		// Provider comes from the active configuration, not the input
		assert.Equal(t, models.ProviderLocal, media.Provider)
		assert.Len(t, repo.created, 1)
	})

	t.Run("metadata failure is propagated", func(t *testing.T) {
		repo := &mockMediaRepository{createErr: errors.New("database error")}
		svc := NewUploadService(repo, &mockConfigProvider{cfg: uploadTestConfig()}, zap.NewNop())

		_, err := svc.Confirm(context.Background(), ConfirmUploadInput{
			URL:      "https://example.com/x.jpg",
			Filename: "x.jpg",
		})

		assert.Error(t, err)
	})
}
