package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopora/storage-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMediaTestRepository creates a media repository with a mock database
func setupMediaTestRepository(t *testing.T) (*mediaRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewMediaRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func mediaRows(items ...*models.Media) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "filename", "original_name", "url", "mime_type", "type", "size",
		"folder", "provider", "alt", "caption", "description", "user_id",
		"created_at", "updated_at",
	})
	for _, m := range items {
		rows.AddRow(m.ID, m.Filename, m.OriginalName, m.URL, m.MimeType, m.Type,
			m.Size, m.Folder, m.Provider, m.Alt, m.Caption, m.Description,
			m.UserID, m.CreatedAt, m.UpdatedAt)
	}
	return rows
}

func testMedia(id string) *models.Media {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &models.Media{
		ID:           id,
		Filename:     "photo-1748779200000-a1b2c3d4e5f60718.jpg",
		OriginalName: "photo.jpg",
		URL:          "http://localhost:8080/uploads/general/photo-1748779200000-a1b2c3d4e5f60718.jpg",
		MimeType:     "image/jpeg",
		Type:         models.MediaTypeImage,
		Size:         1024,
		Folder:       "general",
		Provider:     models.ProviderLocal,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestNewMediaRepository(t *testing.T) {
	db := &sql.DB{}

	repo := NewMediaRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestMediaRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		media         *models.Media
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name:  "success",
			media: testMedia("media-1"),
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO media`).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedError: false,
		},
		{
			name:  "database error on insert",
			media: testMedia("media-1"),
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO media`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupMediaTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.media)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMediaRepository_GetByID(t *testing.T) {
	userID := int64(7)

	tests := []struct {
		name          string
		id            string
		userID        *int64
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name: "found",
			id:   "media-1",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .+ FROM media WHERE id = \?`).
					WithArgs("media-1").
					WillReturnRows(mediaRows(testMedia("media-1")))
			},
		},
		{
			name:   "scoped to owner",
			id:     "media-1",
			userID: &userID,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .+ FROM media WHERE id = \? AND user_id = \?`).
					WithArgs("media-1", userID).
					WillReturnRows(mediaRows(testMedia("media-1")))
			},
		},
		{
			name: "not found",
			id:   "missing",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .+ FROM media WHERE id = \?`).
					WithArgs("missing").
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: models.ErrNotFound,
		},
		{
			name:   "owned by someone else reports not found",
			id:     "media-1",
			userID: &userID,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .+ FROM media WHERE id = \? AND user_id = \?`).
					WithArgs("media-1", userID).
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupMediaTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			media, err := repo.GetByID(context.Background(), tt.id, tt.userID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, media)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, media)
				assert.Equal(t, tt.id, media.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMediaRepository_List(t *testing.T) {
	t.Run("no filters uses defaults", func(t *testing.T) {
		repo, mock, cleanup := setupMediaTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM media`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery(`SELECT .+ FROM media ORDER BY created_at DESC LIMIT \? OFFSET \?`).
			WithArgs(20, 0).
			WillReturnRows(mediaRows(testMedia("media-1"), testMedia("media-2")))

		items, total, err := repo.List(context.Background(), models.MediaFilter{})

		assert.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, items, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("filters and search", func(t *testing.T) {
		repo, mock, cleanup := setupMediaTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM media WHERE type = \? AND folder = \? AND \(filename LIKE \? OR original_name LIKE \? OR alt LIKE \?\)`).
			WithArgs(models.MediaTypeImage, "gallery", "%cat%", "%cat%", "%cat%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT .+ FROM media WHERE type = \? AND folder = \?.+ ORDER BY size ASC LIMIT \? OFFSET \?`).
			WithArgs(models.MediaTypeImage, "gallery", "%cat%", "%cat%", "%cat%", 10, 10).
			WillReturnRows(mediaRows(testMedia("media-1")))

		items, total, err := repo.List(context.Background(), models.MediaFilter{
			Type:      models.MediaTypeImage,
			Folder:    "gallery",
			Search:    "cat",
			SortBy:    "size",
			SortOrder: "asc",
			Page:      2,
			PerPage:   10,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, items, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown sort column falls back to created_at DESC", func(t *testing.T) {
		repo, mock, cleanup := setupMediaTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM media`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT .+ FROM media ORDER BY created_at DESC LIMIT \? OFFSET \?`).
			WithArgs(20, 0).
			WillReturnRows(mediaRows())

		_, _, err := repo.List(context.Background(), models.MediaFilter{SortBy: "id; DROP TABLE media"})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMediaRepository_Update(t *testing.T) {
	alt := "new alt"

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE media`).
					WithArgs(&alt, nil, nil, "media-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE media`).
					WithArgs(&alt, nil, nil, "media-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupMediaTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Update(context.Background(), "media-1", models.MediaUpdate{Alt: &alt})

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// A body with no fields still matches the row; the DSN's clientFoundRows
// option makes the driver report matched rows, so an unchanged record must
// not come back as not found.
func TestMediaRepository_Update_NoOpStillMatchesExistingRow(t *testing.T) {
	repo, mock, cleanup := setupMediaTestRepository(t)
	defer cleanup()

	mock.ExpectExec(`UPDATE media`).
		WithArgs(nil, nil, nil, "media-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), "media-1", models.MediaUpdate{})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMediaRepository_DeleteByID(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM media WHERE id = \?`).
					WithArgs("media-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM media WHERE id = \?`).
					WithArgs("media-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: models.ErrNotFound,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM media WHERE id = \?`).
					WithArgs("media-1").
					WillReturnError(errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupMediaTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.DeleteByID(context.Background(), "media-1")

			if tt.expectedError != nil {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMediaRepository_Stats(t *testing.T) {
	repo, mock, cleanup := setupMediaTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT COUNT\(\*\), COALESCE\(SUM\(size\), 0\) FROM media`).
		WillReturnRows(sqlmock.NewRows([]string{"count", "size"}).AddRow(3, 3072))
	mock.ExpectQuery(`SELECT type, COUNT\(\*\) FROM media GROUP BY type`).
		WillReturnRows(sqlmock.NewRows([]string{"type", "count"}).
			AddRow("image", 2).
			AddRow("document", 1))
	mock.ExpectQuery(`SELECT folder, COUNT\(\*\) FROM media GROUP BY folder`).
		WillReturnRows(sqlmock.NewRows([]string{"folder", "count"}).
			AddRow("general", 3))

	stats, err := repo.Stats(context.Background())

	assert.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, int64(3), stats.TotalCount)
	assert.Equal(t, int64(3072), stats.TotalSize)
	assert.Equal(t, int64(2), stats.ByType["image"])
	assert.Equal(t, int64(1), stats.ByType["document"])
	assert.Equal(t, int64(3), stats.ByFolder["general"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
