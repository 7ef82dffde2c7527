package designs

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDesignRepo(t *testing.T) (*Repo, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepo(db), mock, db
}

func TestDesignRepo_Save(t *testing.T) {
	repo, mock, _ := setupDesignRepo(t)

	d := fallbackDesigns(sampleSubmission())[0]

	mock.ExpectQuery("insert into designs").
		WithArgs(
			sqlmock.AnyArg(), // id
			"user-1",
			d.CompanyName,
			d.DesignName,
			d.Description,
			sqlmock.AnyArg(), // color_palette
			sqlmock.AnyArg(), // typography
			sqlmock.AnyArg(), // layout
			sqlmock.AnyArg(), // features
			d.ImageStyle,
			sqlmock.AnyArg(), // preview_images
		).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
			AddRow(time.Now(), time.Now()))

	saved, err := repo.Save(context.Background(), "user-1", &d)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDesignRepo_GetNotFound(t *testing.T) {
	repo, mock, _ := setupDesignRepo(t)

	mock.ExpectQuery("select (.+) from designs").
		WithArgs("missing-id", "user-1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "user-1", "missing-id")
	assert.ErrorIs(t, err, ErrDesignNotFound)
}

func TestDesignRepo_Get(t *testing.T) {
	repo, mock, _ := setupDesignRepo(t)

	rows := sqlmock.NewRows([]string{
		"id", "company_name", "design_name", "description",
		"color_palette", "typography", "layout", "features", "image_style", "preview_images",
		"created_at", "updated_at",
	}).AddRow(
		"design-1", "Acme", "Modern Acme", "desc",
		[]byte(`{"primary":"#FFD100"}`), []byte(`{"heading_font":"Inter"}`),
		[]byte(`{"type":"single-page","sections":["hero"]}`), []byte(`["responsive"]`),
		"photographic", []byte(`{}`),
		time.Now(), time.Now(),
	)

	mock.ExpectQuery("select (.+) from designs").
		WithArgs("design-1", "user-1").
		WillReturnRows(rows)

	d, err := repo.Get(context.Background(), "user-1", "design-1")
	require.NoError(t, err)
	assert.Equal(t, "Modern Acme", d.DesignName)
	assert.Equal(t, "#FFD100", d.ColorPalette.Primary)
	assert.Equal(t, []string{"hero"}, d.Layout.Sections)
	assert.Equal(t, []string{"responsive"}, d.Features)
}

func TestDesignRepo_Delete(t *testing.T) {
	repo, mock, _ := setupDesignRepo(t)

	t.Run("deletes owned design", func(t *testing.T) {
		mock.ExpectExec("delete from designs").
			WithArgs("design-1", "user-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.Delete(context.Background(), "user-1", "design-1")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("reports missing design", func(t *testing.T) {
		mock.ExpectExec("delete from designs").
			WithArgs("design-2", "user-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.Delete(context.Background(), "user-1", "design-2")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
