package models

import (
	"strings"
	"time"
)

// MediaType is the derived category of a stored object
type MediaType string

const (
	MediaTypeImage    MediaType = "image"
	MediaTypeVideo    MediaType = "video"
	MediaTypeAudio    MediaType = "audio"
	MediaTypeDocument MediaType = "document"
	MediaTypeOther    MediaType = "other"
)

// MediaTypeFromMIME derives the media category from a MIME type. The category
// is computed once at creation time and never recomputed afterwards.
func MediaTypeFromMIME(mimeType string) MediaType {
	mimeType = strings.ToLower(mimeType)
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return MediaTypeImage
	case strings.HasPrefix(mimeType, "video/"):
		return MediaTypeVideo
	case strings.HasPrefix(mimeType, "audio/"):
		return MediaTypeAudio
	case strings.Contains(mimeType, "pdf"),
		strings.Contains(mimeType, "document"),
		strings.Contains(mimeType, "text"),
		strings.Contains(mimeType, "sheet"):
		return MediaTypeDocument
	default:
		return MediaTypeOther
	}
}

// Media represents the persisted metadata record for one stored object.
// The binary content is immutable once stored; only the descriptive fields
// (alt, caption, description) can be updated afterwards.
type Media struct {
	ID           string          `json:"id" db:"id"`
	Filename     string          `json:"filename" db:"filename"`
	OriginalName string          `json:"originalName" db:"original_name"`
	URL          string          `json:"url" db:"url"`
	MimeType     string          `json:"mimeType" db:"mime_type"`
	Type         MediaType       `json:"type" db:"type"`
	Size         int64           `json:"size" db:"size"`
	Folder       string          `json:"folder" db:"folder"`
	Provider     StorageProvider `json:"provider" db:"provider"`
	Alt          *string         `json:"alt,omitempty" db:"alt"`
	Caption      *string         `json:"caption,omitempty" db:"caption"`
	Description  *string         `json:"description,omitempty" db:"description"`
	UserID       *int64          `json:"userId,omitempty" db:"user_id"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time       `json:"updatedAt" db:"updated_at"`
}

// MediaFilter describes the list query: optional filters, free-text search
// across filename/original name/alt, sorting and pagination.
type MediaFilter struct {
	Type      MediaType
	Folder    string
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	PerPage   int
	UserID    *int64
}

// MediaList is a paginated list result
type MediaList struct {
	Items   []*Media `json:"items"`
	Total   int64    `json:"total"`
	Page    int      `json:"page"`
	PerPage int      `json:"perPage"`
}

// MediaUpdate carries the mutable metadata fields. A nil field keeps the
// previous value.
type MediaUpdate struct {
	Alt         *string `json:"alt"`
	Caption     *string `json:"caption"`
	Description *string `json:"description"`
}

// MediaStats aggregates the stored media: total count, total bytes (raw and
// human readable) and breakdowns by type category and by folder.
type MediaStats struct {
	TotalCount    int64            `json:"totalCount"`
	TotalSize     int64            `json:"totalSize"`
	TotalSizeText string           `json:"totalSizeText"`
	ByType        map[string]int64 `json:"byType"`
	ByFolder      map[string]int64 `json:"byFolder"`
}

// BulkDeleteResult reports the per-id outcome of a bulk deletion. Each id is
// processed independently; failures never abort the rest of the batch.
type BulkDeleteResult struct {
	Deleted []string `json:"deleted"`
	Failed  []string `json:"failed"`
}
