package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopora/storage-service/internal/auth/middleware"
	"github.com/shopora/storage-service/internal/auth/service"
	"github.com/shopora/storage-service/internal/models"
	"go.uber.org/zap"
)

// MediaService defines the interface for media service operations
type MediaService interface {
	// Method Get retrieves a media record by ID, optionally scoped to an owner.
	//
	// Records owned by another user are reported as not found.
	Get(ctx context.Context, id string, userID *int64) (*models.Media, error)
	// Method List returns a filtered, paginated page of media records.
	List(ctx context.Context, filter models.MediaFilter) (*models.MediaList, error)
	// Method Update modifies the metadata fields of a media record.
	Update(ctx context.Context, id string, userID *int64, update models.MediaUpdate) (*models.Media, error)
	// Method Delete removes the physical file and then the metadata record.
	Delete(ctx context.Context, id string, userID *int64) error
	// Method BulkDelete deletes each ID independently and reports which failed.
	BulkDelete(ctx context.Context, ids []string, userID *int64) *models.BulkDeleteResult
	// Method Stats returns aggregate counts and sizes across all media.
	Stats(ctx context.Context) (*models.MediaStats, error)
}

// MediaHandler handles media metadata HTTP requests
type MediaHandler struct {
	BaseHandler
	mediaService MediaService
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(mediaService MediaService, logger *zap.Logger) *MediaHandler {
	return &MediaHandler{
		BaseHandler:  BaseHandler{Logger: logger},
		mediaService: mediaService,
	}
}

// RegisterRoutes registers all media handler routes
func (h *MediaHandler) RegisterRoutes(r chi.Router) {
	r.Route("/media", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/stats", h.Stats)
		r.Post("/bulk-delete", h.BulkDelete)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles GET /media
// @Summary List media
// @Description List media records with filtering, search, sorting and pagination
// @Tags media
// @Accept json
// @Produce json
// @Param type query string false "Media type category" Enums(image, video, audio, document, other)
// @Param folder query string false "Folder filter"
// @Param search query string false "Free-text search across filename, original name and alt"
// @Param sortBy query string false "Sort column" Enums(created_at, filename, original_name, size, type, folder)
// @Param sortOrder query string false "Sort direction" Enums(asc, desc)
// @Param page query int false "Page number"
// @Param perPage query int false "Page size (max 100)"
// @Success 200 {object} models.MediaList
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /media [get]
func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := models.MediaFilter{
		Type:      models.MediaType(q.Get("type")),
		Folder:    q.Get("folder"),
		Search:    q.Get("search"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
		Page:      queryInt(q.Get("page")),
		PerPage:   queryInt(q.Get("perPage")),
		UserID:    scopedUserID(r),
	}

	list, err := h.mediaService.List(r.Context(), filter)
	if err != nil {
		h.RespondServiceError(w, err, "failed to list media")
		return
	}

	h.RespondJSON(w, http.StatusOK, list)
}

// Get handles GET /media/{id}
// @Summary Get media record
// @Tags media
// @Accept json
// @Produce json
// @Param id path string true "Media ID"
// @Success 200 {object} models.Media
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 404 {object} map[string]string "Media not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /media/{id} [get]
func (h *MediaHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	media, err := h.mediaService.Get(r.Context(), id, scopedUserID(r))
	if err != nil {
		h.RespondServiceError(w, err, "failed to get media")
		return
	}

	h.RespondJSON(w, http.StatusOK, media)
}

// Update handles PATCH /media/{id}
// @Summary Update media metadata
// @Description Update alt, caption and description. Omitted fields keep their current value.
// @Tags media
// @Accept json
// @Produce json
// @Param id path string true "Media ID"
// @Param request body models.MediaUpdate true "Fields to update"
// @Success 200 {object} models.Media
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 404 {object} map[string]string "Media not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /media/{id} [patch]
func (h *MediaHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var update models.MediaUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	media, err := h.mediaService.Update(r.Context(), id, scopedUserID(r), update)
	if err != nil {
		h.RespondServiceError(w, err, "failed to update media")
		return
	}

	h.RespondJSON(w, http.StatusOK, media)
}

// Delete handles DELETE /media/{id}
// @Summary Delete media
// @Description Remove the physical file from its recorded backend, then drop the metadata record
// @Tags media
// @Accept json
// @Produce json
// @Param id path string true "Media ID"
// @Success 204 "Media deleted"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 404 {object} map[string]string "Media not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /media/{id} [delete]
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.mediaService.Delete(r.Context(), id, scopedUserID(r)); err != nil {
		h.RespondServiceError(w, err, "failed to delete media")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// BulkDelete handles POST /media/bulk-delete
// @Summary Bulk delete media
// @Description Delete each ID independently. One failing ID never aborts the batch.
// @Tags media
// @Accept json
// @Produce json
// @Param request body bulkDeleteRequest true "IDs to delete"
// @Success 200 {object} models.BulkDeleteResult
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /media/bulk-delete [post]
func (h *MediaHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.IDs) == 0 {
		h.RespondError(w, http.StatusBadRequest, "at least one id is required")
		return
	}

	result := h.mediaService.BulkDelete(r.Context(), req.IDs, scopedUserID(r))
	h.RespondJSON(w, http.StatusOK, result)
}

// Stats handles GET /media/stats
// @Summary Media statistics
// @Description Total count and size plus breakdowns by type category and folder
// @Tags media
// @Accept json
// @Produce json
// @Success 200 {object} models.MediaStats
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /media/stats [get]
func (h *MediaHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.mediaService.Stats(r.Context())
	if err != nil {
		h.RespondServiceError(w, err, "failed to get media stats")
		return
	}

	h.RespondJSON(w, http.StatusOK, stats)
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// scopedUserID returns the owner scope for media operations: admins see all
// records, regular users only their own
func scopedUserID(r *http.Request) *int64 {
	if role, ok := middleware.GetRole(r.Context()); ok && role >= service.RoleAdmin {
		return nil
	}
	if userID, ok := middleware.GetUserID(r.Context()); ok {
		return &userID
	}
	return nil
}

// queryInt parses an integer query parameter, returning zero on absence or
// garbage so the service applies its defaults
func queryInt(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}
