package sitecode

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitegenio/sitegen-backend/internal/auth"
	"github.com/sitegenio/sitegen-backend/internal/designs"
)

func setupCodeRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(auth.CtxUserDBID, "user-1")
	})

	api := r.Group("/api/v1")
	h := NewHandler(NewRepo(db), designs.NewRepo(db), NewGenerator(nil))
	RegisterDesignCodeRoutes(api.Group("/designs"), api, h)
	return r, mock
}

func expectOwnedDesign(mock sqlmock.Sqlmock, designID string) {
	rows := sqlmock.NewRows([]string{
		"id", "company_name", "design_name", "description",
		"color_palette", "typography", "layout", "features", "image_style", "preview_images",
		"created_at", "updated_at",
	}).AddRow(
		designID, "Acme Plumbing", "Modern Acme Plumbing", "desc",
		[]byte(`{"primary":"#FFD100"}`), []byte(`{}`), []byte(`{"sections":["hero"]}`), []byte(`[]`),
		"photographic", []byte(`{}`),
		time.Now(), time.Now(),
	)
	mock.ExpectQuery("select (.+) from designs").
		WithArgs(designID, "user-1").
		WillReturnRows(rows)
}

func TestGenerateCodeEndpoint(t *testing.T) {
	r, mock := setupCodeRouter(t)

	expectOwnedDesign(mock, "design-1")
	// no further SQL expectations: generation must not persist anything

	req := httptest.NewRequest(http.MethodPost, "/api/v1/designs/design-1/code/generate", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		OK   bool     `json:"ok"`
		Code Artifact `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.NotEmpty(t, resp.Code.HTML)
	assert.NotEmpty(t, resp.Code.CSS)
	assert.NotNil(t, resp.Code.Framework.Pages)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertCodeEndpoint(t *testing.T) {
	r, mock := setupCodeRouter(t)

	t.Run("stores valid code", func(t *testing.T) {
		expectOwnedDesign(mock, "design-1")
		mock.ExpectBegin()
		mock.ExpectQuery("insert into website_code").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow("code-1", time.Now(), time.Now()))
		mock.ExpectExec("insert into website_code_versions").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		body, _ := json.Marshal(map[string]any{"html": "<html></html>", "css": "body {}"})
		req := httptest.NewRequest(http.MethodPut, "/api/v1/designs/design-1/code", bytes.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects empty html", func(t *testing.T) {
		expectOwnedDesign(mock, "design-1")

		body, _ := json.Marshal(map[string]any{"html": "", "css": "body {}"})
		req := httptest.NewRequest(http.MethodPut, "/api/v1/designs/design-1/code", bytes.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteCodeEndpoint_NoCodeIsNoop(t *testing.T) {
	r, mock := setupCodeRouter(t)

	expectOwnedDesign(mock, "design-1")
	mock.ExpectExec("delete from website_code").
		WithArgs("design-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/designs/design-1/code", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
}

func TestDeleteVersionEndpoint(t *testing.T) {
	r, mock := setupCodeRouter(t)

	t.Run("deletes owned version", func(t *testing.T) {
		mock.ExpectQuery("select design_id from website_code_versions").
			WithArgs("v1").
			WillReturnRows(sqlmock.NewRows([]string{"design_id"}).AddRow("design-1"))
		expectOwnedDesign(mock, "design-1")
		mock.ExpectExec("delete from website_code_versions").
			WithArgs("v1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/code/versions/v1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("hides versions of foreign designs", func(t *testing.T) {
		mock.ExpectQuery("select design_id from website_code_versions").
			WithArgs("v2").
			WillReturnRows(sqlmock.NewRows([]string{"design_id"}).AddRow("foreign-design"))
		mock.ExpectQuery("select (.+) from designs").
			WithArgs("foreign-design", "user-1").
			WillReturnError(sql.ErrNoRows)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/code/versions/v2", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
