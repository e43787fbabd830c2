package handlers

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopora/storage-service/internal/models"
	"github.com/shopora/storage-service/internal/storage"
	"go.uber.org/zap"
)

// staticCacheControl marks stored files as immutable for a year; generated
// filenames never collide, so a URL always points at the same bytes.
const staticCacheControl = "public, max-age=31536000"

// contentTypes maps file extensions to MIME types for local file serving
var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".pdf":  "application/pdf",
	".txt":  "text/plain",
	".csv":  "text/csv",
	".json": "application/json",
	".zip":  "application/zip",
}

// ConfigProvider resolves the active storage configuration
type ConfigProvider interface {
	// Method GetConfig returns the current storage configuration.
	GetConfig(ctx context.Context) (*models.StorageConfig, error)
}

// StaticHandler serves locally stored files under /uploads
type StaticHandler struct {
	BaseHandler
	configs ConfigProvider
}

// NewStaticHandler creates a new static file handler
func NewStaticHandler(configs ConfigProvider, logger *zap.Logger) *StaticHandler {
	return &StaticHandler{
		BaseHandler: BaseHandler{Logger: logger},
		configs:     configs,
	}
}

// RegisterRoutes registers the static file route
func (h *StaticHandler) RegisterRoutes(r chi.Router) {
	r.Get("/uploads/{folder}/{filename}", h.ServeFile)
}

// ServeFile handles GET /uploads/{folder}/{filename}
// @Summary Download a locally stored file
// @Description Serve a file from the local storage backend with long-lived cache headers
// @Tags static
// @Produce application/octet-stream
// @Param folder path string true "Folder"
// @Param filename path string true "File name"
// @Success 200 "File content"
// @Failure 404 {object} map[string]string "File not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /uploads/{folder}/{filename} [get]
func (h *StaticHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	folder := chi.URLParam(r, "folder")
	filename := chi.URLParam(r, "filename")

	// Reject any path element that could climb out of the upload root
	if !safePathElement(folder) || !safePathElement(filename) {
		h.RespondError(w, http.StatusNotFound, "file not found")
		return
	}

	cfg, err := h.configs.GetConfig(r.Context())
	if err != nil {
		h.Logger.Error("failed to load storage configuration", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to serve file")
		return
	}

	path := storage.NewLocalBackend(cfg).FilePath(folder, filename)
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			h.RespondError(w, http.StatusNotFound, "file not found")
			return
		}
		h.Logger.Error("failed to open file", zap.String("path", path), zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to serve file")
		return
	}
	defer file.Close()

	contentType, ok := contentTypes[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", staticCacheControl)

	if _, err := io.Copy(w, file); err != nil {
		h.Logger.Error("failed to copy file to response", zap.Error(err))
	}
}

// safePathElement reports whether a URL path element is a plain name with no
// separators or traversal
func safePathElement(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\")
}
