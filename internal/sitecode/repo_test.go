package sitecode

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCodeRepo(t *testing.T) (*Repo, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepo(db), mock
}

func TestCodeRepo_Upsert(t *testing.T) {
	repo, mock := setupCodeRepo(t)

	a := fallbackArtifact(sampleDesign())

	mock.ExpectBegin()
	mock.ExpectQuery("insert into website_code").
		WithArgs(
			sqlmock.AnyArg(), // id
			"design-1",
			a.HTML,
			a.CSS,
			a.JavaScript,
			sqlmock.AnyArg(), // nextjs_components JSONB
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("code-1", time.Now(), time.Now()))
	mock.ExpectExec("insert into website_code_versions").
		WithArgs(
			sqlmock.AnyArg(), // version id
			"design-1",
			a.HTML,
			a.CSS,
			a.JavaScript,
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	id, err := repo.Upsert(context.Background(), "design-1", &a)
	require.NoError(t, err)
	assert.Equal(t, "code-1", id)
	assert.Equal(t, "design-1", a.DesignID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCodeRepo_UpsertRollsBackOnVersionFailure(t *testing.T) {
	repo, mock := setupCodeRepo(t)

	a := fallbackArtifact(sampleDesign())

	mock.ExpectBegin()
	mock.ExpectQuery("insert into website_code").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("code-1", time.Now(), time.Now()))
	mock.ExpectExec("insert into website_code_versions").
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	_, err := repo.Upsert(context.Background(), "design-1", &a)
	assert.Error(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCodeRepo_GetCurrent(t *testing.T) {
	repo, mock := setupCodeRepo(t)

	t.Run("returns stored artifact", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"id", "design_id", "html", "css", "javascript", "nextjs_components", "created_at", "updated_at",
		}).AddRow(
			"code-1", "design-1", "<html></html>", "body {}", "",
			[]byte(`{"pages":[{"name":"Home","code":"..."}]}`),
			time.Now(), time.Now(),
		)
		mock.ExpectQuery("select (.+) from website_code").
			WithArgs("design-1").
			WillReturnRows(rows)

		a, err := repo.GetCurrent(context.Background(), "design-1")
		require.NoError(t, err)
		assert.Equal(t, "code-1", a.ID)
		require.Len(t, a.Framework.Pages, 1)
		assert.NotNil(t, a.Framework.Components)
		assert.NotNil(t, a.Framework.Styles)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("select (.+) from website_code").
			WithArgs("design-2").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetCurrent(context.Background(), "design-2")
		assert.ErrorIs(t, err, ErrCodeNotFound)
	})

	t.Run("tolerates malformed framework blob", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"id", "design_id", "html", "css", "javascript", "nextjs_components", "created_at", "updated_at",
		}).AddRow(
			"code-1", "design-1", "<html></html>", "body {}", "",
			[]byte(`not json`),
			time.Now(), time.Now(),
		)
		mock.ExpectQuery("select (.+) from website_code").
			WithArgs("design-1").
			WillReturnRows(rows)

		a, err := repo.GetCurrent(context.Background(), "design-1")
		require.NoError(t, err)
		assert.Empty(t, a.Framework.Pages)
		assert.NotNil(t, a.Framework.Pages)
	})
}

func TestCodeRepo_ListVersions(t *testing.T) {
	repo, mock := setupCodeRepo(t)

	rows := sqlmock.NewRows([]string{"id", "created_at", "nextjs_components"}).
		AddRow("v2", time.Now(), []byte(`{"pages":[{"name":"Home","code":"..."}]}`)).
		AddRow("v1", time.Now().Add(-time.Hour), []byte(`{}`))

	mock.ExpectQuery("select (.+) from website_code_versions").
		WithArgs("design-1").
		WillReturnRows(rows)

	versions, err := repo.ListVersions(context.Background(), "design-1")
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.True(t, versions[0].HasFrameworkContent)
	assert.False(t, versions[1].HasFrameworkContent)
}

func TestCodeRepo_DeleteCurrentForDesign(t *testing.T) {
	repo, mock := setupCodeRepo(t)

	t.Run("deletes existing row", func(t *testing.T) {
		mock.ExpectExec("delete from website_code").
			WithArgs("design-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.DeleteCurrentForDesign(context.Background(), "design-1")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("no row is not an error", func(t *testing.T) {
		mock.ExpectExec("delete from website_code").
			WithArgs("design-2").
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.DeleteCurrentForDesign(context.Background(), "design-2")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestCodeRepo_VersionDesignID(t *testing.T) {
	repo, mock := setupCodeRepo(t)

	t.Run("resolves owner design", func(t *testing.T) {
		mock.ExpectQuery("select design_id from website_code_versions").
			WithArgs("v1").
			WillReturnRows(sqlmock.NewRows([]string{"design_id"}).AddRow("design-1"))

		designID, err := repo.VersionDesignID(context.Background(), "v1")
		require.NoError(t, err)
		assert.Equal(t, "design-1", designID)
	})

	t.Run("unknown version", func(t *testing.T) {
		mock.ExpectQuery("select design_id from website_code_versions").
			WithArgs("v9").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.VersionDesignID(context.Background(), "v9")
		assert.ErrorIs(t, err, ErrVersionNotFound)
	})
}
