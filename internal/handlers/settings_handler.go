package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopora/storage-service/internal/models"
	"github.com/shopora/storage-service/internal/services"
	"go.uber.org/zap"
)

// SettingsService defines the interface for storage settings operations
type SettingsService interface {
	// Method GetConfig returns the full storage configuration including secrets.
	GetConfig(ctx context.Context) (*models.StorageConfig, error)
	// Method GetPublicConfig returns the configuration with secrets redacted.
	GetPublicConfig(ctx context.Context) (*models.PublicStorageConfig, error)
	// Method UpdateSettings applies a sparse configuration update.
	UpdateSettings(ctx context.Context, input services.UpdateStorageSettingsInput) error
	// Method TestConnection probes the configured backend and classifies failures.
	TestConnection(ctx context.Context, input services.TestConnectionInput) (models.ConnectionTestResult, error)
}

// SettingsHandler handles administrative storage configuration requests
type SettingsHandler struct {
	BaseHandler
	settingsService SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		BaseHandler:     BaseHandler{Logger: logger},
		settingsService: settingsService,
	}
}

// RegisterRoutes registers all settings handler routes
func (h *SettingsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/admin/storage", func(r chi.Router) {
		r.Get("/config", h.GetConfig)
		r.Get("/config/public", h.GetPublicConfig)
		r.Put("/config", h.UpdateConfig)
		r.Post("/test-connection", h.TestConnection)
	})
}

// GetConfig handles GET /admin/storage/config
// @Summary Get storage configuration
// @Description Full storage configuration including S3 credentials. Admin only.
// @Tags settings
// @Accept json
// @Produce json
// @Success 200 {object} models.StorageConfig
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 403 {object} map[string]string "Insufficient permissions"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /admin/storage/config [get]
func (h *SettingsHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.settingsService.GetConfig(r.Context())
	if err != nil {
		h.RespondServiceError(w, err, "failed to load storage configuration")
		return
	}

	h.RespondJSON(w, http.StatusOK, cfg)
}

// GetPublicConfig handles GET /admin/storage/config/public
// @Summary Get redacted storage configuration
// @Description Storage configuration with secrets replaced by a has-credentials flag
// @Tags settings
// @Accept json
// @Produce json
// @Success 200 {object} models.PublicStorageConfig
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 403 {object} map[string]string "Insufficient permissions"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /admin/storage/config/public [get]
func (h *SettingsHandler) GetPublicConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.settingsService.GetPublicConfig(r.Context())
	if err != nil {
		h.RespondServiceError(w, err, "failed to load storage configuration")
		return
	}

	h.RespondJSON(w, http.StatusOK, cfg)
}

// UpdateConfig handles PUT /admin/storage/config
// @Summary Update storage configuration
// @Description Sparse update: omitted or empty fields keep their current value
// @Tags settings
// @Accept json
// @Produce json
// @Param request body services.UpdateStorageSettingsInput true "Settings to change"
// @Success 204 "Configuration updated"
// @Failure 400 {object} map[string]string "Invalid settings"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 403 {object} map[string]string "Insufficient permissions"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /admin/storage/config [put]
func (h *SettingsHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var input services.UpdateStorageSettingsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.settingsService.UpdateSettings(r.Context(), input); err != nil {
		h.RespondServiceError(w, err, "failed to update storage configuration")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// TestConnection handles POST /admin/storage/test-connection
// @Summary Test storage connectivity
// @Description Probe the backend with supplied or saved credentials. Failures come back as a structured result, not an error status.
// @Tags settings
// @Accept json
// @Produce json
// @Param request body services.TestConnectionInput true "Connection parameters to test"
// @Success 200 {object} models.ConnectionTestResult
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 403 {object} map[string]string "Insufficient permissions"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /admin/storage/test-connection [post]
func (h *SettingsHandler) TestConnection(w http.ResponseWriter, r *http.Request) {
	var input services.TestConnectionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.settingsService.TestConnection(r.Context(), input)
	if err != nil {
		h.RespondServiceError(w, err, "failed to test connection")
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}
