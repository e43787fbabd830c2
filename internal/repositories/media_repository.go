package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopora/storage-service/internal/models"
)

const mediaColumns = `id, filename, original_name, url, mime_type, type, size, folder, provider, alt, caption, description, user_id, created_at, updated_at`

// sortColumns is the allow-list for list sorting. An unrecognized sort field
// silently falls back to created_at DESC rather than erroring.
var sortColumns = map[string]bool{
	"created_at":    true,
	"filename":      true,
	"original_name": true,
	"size":          true,
	"type":          true,
	"folder":        true,
}

// mediaRepository implements media metadata persistence
type mediaRepository struct {
	db *sql.DB
}

// NewMediaRepository creates a new media repository
func NewMediaRepository(db *sql.DB) *mediaRepository {
	return &mediaRepository{
		db: db,
	}
}

// Create inserts a new media record into the database
func (r *mediaRepository) Create(ctx context.Context, media *models.Media) error {
	query := `
		INSERT INTO media (id, filename, original_name, url, mime_type, type, size, folder, provider, alt, caption, description, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		media.ID,
		media.Filename,
		media.OriginalName,
		media.URL,
		media.MimeType,
		media.Type,
		media.Size,
		media.Folder,
		media.Provider,
		media.Alt,
		media.Caption,
		media.Description,
		media.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to create media: %w", err)
	}

	return nil
}

// GetByID retrieves a media record by ID. When userID is non-nil the lookup is
// scoped to that owner; records owned by someone else come back as ErrNotFound
// so existence is not leaked.
func (r *mediaRepository) GetByID(ctx context.Context, id string, userID *int64) (*models.Media, error) {
	query := `SELECT ` + mediaColumns + ` FROM media WHERE id = ?`
	args := []any{id}
	if userID != nil {
		query += ` AND user_id = ?`
		args = append(args, *userID)
	}
	query += ` LIMIT 1`

	media, err := scanMedia(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get media by id: %w", err)
	}

	return media, nil
}

// List retrieves media records matching the filter, with the total match count
func (r *mediaRepository) List(ctx context.Context, filter models.MediaFilter) ([]*models.Media, int64, error) {
	where, args := buildMediaWhere(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM media` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count media: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	query := `SELECT ` + mediaColumns + ` FROM media` + where +
		` ORDER BY ` + sortClause(filter.SortBy, filter.SortOrder) +
		` LIMIT ? OFFSET ?`
	listArgs := append(append([]any{}, args...), perPage, (page-1)*perPage)

	rows, err := r.db.QueryContext(ctx, query, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list media: %w", err)
	}
	defer rows.Close()

	var items []*models.Media
	for rows.Next() {
		media, err := scanMedia(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan media: %w", err)
		}
		items = append(items, media)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read media rows: %w", err)
	}

	return items, total, nil
}

// Update writes the mutable metadata fields. A nil field keeps its previous
// value via COALESCE.
func (r *mediaRepository) Update(ctx context.Context, id string, update models.MediaUpdate) error {
	query := `
		UPDATE media
		SET alt = COALESCE(?, alt),
		    caption = COALESCE(?, caption),
		    description = COALESCE(?, description)
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, update.Alt, update.Caption, update.Description, id)
	if err != nil {
		return fmt.Errorf("failed to update media: %w", err)
	}

	// The DSN sets clientFoundRows, so this counts matched rows rather than
	// changed rows and a no-op update of an existing record is not a miss.
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	return nil
}

// DeleteByID deletes a media record by ID
func (r *mediaRepository) DeleteByID(ctx context.Context, id string) error {
	query := `DELETE FROM media WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	return nil
}

// Stats aggregates the stored media: total count, total bytes and breakdowns
// by type category and by folder.
func (r *mediaRepository) Stats(ctx context.Context) (*models.MediaStats, error) {
	stats := &models.MediaStats{
		ByType:   make(map[string]int64),
		ByFolder: make(map[string]int64),
	}

	totalsQuery := `SELECT COUNT(*), COALESCE(SUM(size), 0) FROM media`
	if err := r.db.QueryRowContext(ctx, totalsQuery).Scan(&stats.TotalCount, &stats.TotalSize); err != nil {
		return nil, fmt.Errorf("failed to get media totals: %w", err)
	}

	if err := r.groupCounts(ctx, `SELECT type, COUNT(*) FROM media GROUP BY type`, stats.ByType); err != nil {
		return nil, err
	}
	if err := r.groupCounts(ctx, `SELECT folder, COUNT(*) FROM media GROUP BY folder`, stats.ByFolder); err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *mediaRepository) groupCounts(ctx context.Context, query string, dest map[string]int64) error {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to get media breakdown: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return fmt.Errorf("failed to scan media breakdown: %w", err)
		}
		dest[key] = count
	}
	return rows.Err()
}

// buildMediaWhere assembles the WHERE clause for List
func buildMediaWhere(filter models.MediaFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.Type != "" {
		conditions = append(conditions, "type = ?")
		args = append(args, filter.Type)
	}
	if filter.Folder != "" {
		conditions = append(conditions, "folder = ?")
		args = append(args, filter.Folder)
	}
	if filter.Search != "" {
		conditions = append(conditions, "(filename LIKE ? OR original_name LIKE ? OR alt LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}
	if filter.UserID != nil {
		conditions = append(conditions, "user_id = ?")
		args = append(args, *filter.UserID)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// sortClause resolves the ORDER BY clause against the sort allow-list
func sortClause(sortBy, sortOrder string) string {
	if !sortColumns[sortBy] {
		return "created_at DESC"
	}
	order := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		order = "ASC"
	}
	return sortBy + " " + order
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanMedia(s scanner) (*models.Media, error) {
	media := &models.Media{}
	err := s.Scan(
		&media.ID,
		&media.Filename,
		&media.OriginalName,
		&media.URL,
		&media.MimeType,
		&media.Type,
		&media.Size,
		&media.Folder,
		&media.Provider,
		&media.Alt,
		&media.Caption,
		&media.Description,
		&media.UserID,
		&media.CreatedAt,
		&media.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return media, nil
}
