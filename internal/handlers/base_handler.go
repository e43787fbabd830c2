package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopora/storage-service/internal/models"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// RespondServiceError maps a service error to an HTTP response.
//
// Validation and configuration errors surface their message to the client,
// everything else is logged and hidden behind the fallback message.
func (h *BaseHandler) RespondServiceError(w http.ResponseWriter, err error, fallback string) {
	var validationErr *models.ValidationError
	var configErr *models.ConfigurationError
	var externalErr *models.ExternalServiceError

	switch {
	case errors.Is(err, models.ErrNotFound):
		h.RespondError(w, http.StatusNotFound, "not found")
	case errors.As(err, &validationErr):
		h.RespondError(w, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &configErr):
		h.RespondError(w, http.StatusBadRequest, configErr.Error())
	case errors.As(err, &externalErr):
		h.Logger.Error(fallback, zap.Error(err))
		h.RespondError(w, http.StatusBadGateway, fallback)
	default:
		h.Logger.Error(fallback, zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, fallback)
	}
}
