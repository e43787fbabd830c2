package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopora/storage-service/internal/auth/middleware"
	"github.com/shopora/storage-service/internal/models"
	"github.com/shopora/storage-service/internal/services"
	"go.uber.org/zap"
)

// uploadFormMemory is the in-memory buffer handed to ParseMultipartForm;
// larger files spill to temp files.
const uploadFormMemory = 32 << 20 // 32MB

// UploadService defines the interface for upload service operations
type UploadService interface {
	// Method UploadSingle stores one file and returns its media record.
	UploadSingle(ctx context.Context, input services.UploadInput) (*models.Media, error)
	// Method UploadMultiple stores the files in order, aborting on the first failure.
	UploadMultiple(ctx context.Context, inputs []services.UploadInput) ([]*models.Media, error)
	// Method UploadGallery stores the files with the gallery per-file size cap.
	UploadGallery(ctx context.Context, inputs []services.UploadInput) ([]*models.Media, error)
	// Method PresignSingle mints a presigned upload URL for one file.
	//
	// Returns a configuration error when the active provider is not S3.
	PresignSingle(ctx context.Context, originalName, contentType, folder string) (*models.PresignedUpload, error)
	// Method PresignGallery mints presigned upload URLs for a batch of files.
	PresignGallery(ctx context.Context, files []services.PresignFileInput, folder string) ([]*models.PresignedUpload, error)
	// Method Confirm records metadata for a completed presigned upload.
	Confirm(ctx context.Context, input services.ConfirmUploadInput) (*models.Media, error)
}

// UploadHandler handles file upload HTTP requests
type UploadHandler struct {
	BaseHandler
	uploadService UploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService UploadService, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   BaseHandler{Logger: logger},
		uploadService: uploadService,
	}
}

// RegisterRoutes registers the upload routes that require authentication
func (h *UploadHandler) RegisterRoutes(r chi.Router) {
	r.Route("/upload", func(r chi.Router) {
		r.Post("/single", h.UploadSingle)
		r.Post("/multiple", h.UploadMultiple)
		r.Post("/gallery", h.UploadGallery)
		r.Post("/confirm", h.Confirm)
	})
}

// RegisterPresignRoutes registers presigned-URL issuance. Presigning does not
// require authentication: no bytes transit the server and no metadata is
// written until the client confirms.
func (h *UploadHandler) RegisterPresignRoutes(r chi.Router) {
	r.Route("/upload/presigned-url", func(r chi.Router) {
		r.Post("/single", h.PresignSingle)
		r.Post("/gallery", h.PresignGallery)
	})
}

// UploadSingle handles POST /upload/single
// @Summary Upload a single file
// @Description Upload one file via multipart form to the active storage backend
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Param folder formData string false "Target folder"
// @Param alt formData string false "Alt text"
// @Param caption formData string false "Caption"
// @Success 201 {object} models.Media
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /upload/single [post]
func (h *UploadHandler) UploadSingle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(uploadFormMemory); err != nil {
		h.Logger.Error("failed to parse multipart form", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "failed to parse request")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	input := h.uploadInput(r, file, fileHeader)
	media, err := h.uploadService.UploadSingle(r.Context(), input)
	if err != nil {
		h.RespondServiceError(w, err, "failed to upload file")
		return
	}

	h.RespondJSON(w, http.StatusCreated, media)
}

// UploadMultiple handles POST /upload/multiple
// @Summary Upload multiple files
// @Description Upload a batch of files in one request. Processing stops at the first failure.
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Files to upload"
// @Param folder formData string false "Target folder"
// @Success 201 {array} models.Media
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /upload/multiple [post]
func (h *UploadHandler) UploadMultiple(w http.ResponseWriter, r *http.Request) {
	h.uploadBatch(w, r, services.MaxBatchFiles, h.uploadService.UploadMultiple)
}

// UploadGallery handles POST /upload/gallery
// @Summary Upload gallery images
// @Description Upload a batch of gallery images with a stricter per-file size cap
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Files to upload"
// @Param folder formData string false "Target folder"
// @Success 201 {array} models.Media
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /upload/gallery [post]
func (h *UploadHandler) UploadGallery(w http.ResponseWriter, r *http.Request) {
	h.uploadBatch(w, r, services.MaxGalleryFiles, h.uploadService.UploadGallery)
}

// uploadBatch is the shared multi-file flow for the multiple and gallery endpoints
func (h *UploadHandler) uploadBatch(w http.ResponseWriter, r *http.Request, maxFiles int,
	upload func(context.Context, []services.UploadInput) ([]*models.Media, error)) {

	if err := r.ParseMultipartForm(uploadFormMemory); err != nil {
		h.Logger.Error("failed to parse multipart form", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "failed to parse request")
		return
	}

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		h.RespondError(w, http.StatusBadRequest, "at least one file is required")
		return
	}
	if len(fileHeaders) > maxFiles {
		h.RespondError(w, http.StatusBadRequest,
			fmt.Sprintf("too many files: %d exceeds the limit of %d", len(fileHeaders), maxFiles))
		return
	}

	inputs := make([]services.UploadInput, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		file, err := fh.Open()
		if err != nil {
			h.Logger.Error("failed to open uploaded file", zap.String("filename", fh.Filename), zap.Error(err))
			h.RespondError(w, http.StatusBadRequest, "failed to read uploaded file")
			return
		}
		defer file.Close()

		inputs = append(inputs, h.uploadInput(r, file, fh))
	}

	media, err := upload(r.Context(), inputs)
	if err != nil {
		h.RespondServiceError(w, err, "failed to upload files")
		return
	}

	h.RespondJSON(w, http.StatusCreated, media)
}

// uploadInput builds a service upload input from a multipart file
func (h *UploadHandler) uploadInput(r *http.Request, file multipart.File, fh *multipart.FileHeader) services.UploadInput {
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return services.UploadInput{
		Reader:       file,
		Size:         fh.Size,
		MimeType:     contentType,
		OriginalName: fh.Filename,
		Folder:       r.FormValue("folder"),
		Alt:          optionalFormValue(r, "alt"),
		Caption:      optionalFormValue(r, "caption"),
		UserID:       requestUserID(r),
	}
}

// PresignSingle handles POST /upload/presigned-url/single
// @Summary Create a presigned upload URL
// @Description Mint a presigned S3 PUT URL so the client can upload directly to the bucket
// @Tags upload
// @Accept json
// @Produce json
// @Param request body presignSingleRequest true "File to presign"
// @Success 200 {object} models.PresignedUpload
// @Failure 400 {object} map[string]string "Invalid request or non-S3 provider"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /upload/presigned-url/single [post]
func (h *UploadHandler) PresignSingle(w http.ResponseWriter, r *http.Request) {
	var req presignSingleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Filename == "" {
		h.RespondError(w, http.StatusBadRequest, "filename is required")
		return
	}

	presigned, err := h.uploadService.PresignSingle(r.Context(), req.Filename, req.ContentType, req.Folder)
	if err != nil {
		h.RespondServiceError(w, err, "failed to create presigned URL")
		return
	}

	h.RespondJSON(w, http.StatusOK, presigned)
}

// PresignGallery handles POST /upload/presigned-url/gallery
// @Summary Create presigned upload URLs for a gallery batch
// @Description Mint independent presigned S3 PUT URLs for each file in the batch
// @Tags upload
// @Accept json
// @Produce json
// @Param request body presignGalleryRequest true "Files to presign"
// @Success 200 {array} models.PresignedUpload
// @Failure 400 {object} map[string]string "Invalid request or non-S3 provider"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /upload/presigned-url/gallery [post]
func (h *UploadHandler) PresignGallery(w http.ResponseWriter, r *http.Request) {
	var req presignGalleryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Files) == 0 {
		h.RespondError(w, http.StatusBadRequest, "at least one file is required")
		return
	}
	if len(req.Files) > services.MaxGalleryFiles {
		h.RespondError(w, http.StatusBadRequest,
			fmt.Sprintf("too many files: %d exceeds the limit of %d", len(req.Files), services.MaxGalleryFiles))
		return
	}

	presigned, err := h.uploadService.PresignGallery(r.Context(), req.Files, req.Folder)
	if err != nil {
		h.RespondServiceError(w, err, "failed to create presigned URLs")
		return
	}

	h.RespondJSON(w, http.StatusOK, presigned)
}

// Confirm handles POST /upload/confirm
// @Summary Confirm a presigned upload
// @Description Record metadata for a file the client uploaded through a presigned URL
// @Tags upload
// @Accept json
// @Produce json
// @Param request body services.ConfirmUploadInput true "Completed upload"
// @Success 201 {object} models.Media
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Security BearerAuth
// @Router /upload/confirm [post]
func (h *UploadHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var input services.ConfirmUploadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.URL == "" || input.Filename == "" {
		h.RespondError(w, http.StatusBadRequest, "url and filename are required")
		return
	}
	input.UserID = requestUserID(r)

	media, err := h.uploadService.Confirm(r.Context(), input)
	if err != nil {
		h.RespondServiceError(w, err, "failed to confirm upload")
		return
	}

	h.RespondJSON(w, http.StatusCreated, media)
}

type presignSingleRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Folder      string `json:"folder"`
}

type presignGalleryRequest struct {
	Files  []services.PresignFileInput `json:"files"`
	Folder string                      `json:"folder"`
}

// optionalFormValue returns a pointer to the form value, or nil when the
// field was not sent at all
func optionalFormValue(r *http.Request, key string) *string {
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

// requestUserID reads the authenticated user ID placed in the context by the
// auth middleware
func requestUserID(r *http.Request) *int64 {
	if userID, ok := middleware.GetUserID(r.Context()); ok {
		return &userID
	}
	return nil
}
