package storage

import (
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopora/storage-service/internal/models"
)

// ValidateFile enforces the max-size and allowed-MIME-type policy. It runs
// before any bytes reach a backend, so a rejection never leaves a partial
// write behind. An empty allowedTypes list means no MIME restriction.
func ValidateFile(size int64, mimeType string, allowedTypes []string, maxSize int64) error {
	if size > maxSize {
		return models.NewValidationError(
			"file size %s exceeds the maximum allowed size of %s",
			humanize.Bytes(uint64(size)), humanize.Bytes(uint64(maxSize)),
		)
	}

	if len(allowedTypes) > 0 && !slices.Contains(allowedTypes, mimeType) {
		return models.NewValidationError(
			"file type %q is not allowed; allowed types: %v", mimeType, allowedTypes,
		)
	}

	return nil
}

// ValidateFolder restricts a caller-supplied folder to a single path element.
// Folders containing separators or dot segments could escape the upload root
// on the local backend and can never be served by the one-segment static
// route.
func ValidateFolder(folder string) error {
	if folder == "" || folder == "." || folder == ".." || strings.ContainsAny(folder, `/\`) {
		return models.NewValidationError("folder %q is not a valid folder name", folder)
	}
	return nil
}
