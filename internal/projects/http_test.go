package projects

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

	"github.com/sitegenio/sitegen-backend/config"
	"github.com/sitegenio/sitegen-backend/internal/auth"
	"github.com/sitegenio/sitegen-backend/internal/hosting"
)

func setupProjectRouter(t *testing.T, handler http.Handler) (*gin.Engine, sqlmock.Sqlmock) {
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	hostingClient := hosting.NewClient(&config.HostingConfig{
		APIToken: "test-token",
		BaseURL:  srv.URL,
	})

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(auth.CtxUserDBID, "user-1")
	})
	Register(r.Group("/api/v1/projects"), NewRepo(db), hostingClient)
	return r, mock
}

func TestCreateProjectEndpoint(t *testing.T) {
	t.Run("mirrors provider project locally", func(t *testing.T) {
		r, mock := setupProjectRouter(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, "/projects", req.URL.Path)
			_, _ = w.Write([]byte(`{"id":"prj_123","name":"my-site","framework":"nextjs"}`))
		}))

		mock.ExpectQuery("insert into projects").
			WithArgs(sqlmock.AnyArg(), "user-1", "prj_123", "my-site", "nextjs", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
				AddRow(time.Now(), time.Now()))

		body, _ := json.Marshal(map[string]string{"name": "my-site"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", bytes.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "prj_123")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no local row on provider failure", func(t *testing.T) {
		r, mock := setupProjectRouter(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"error":{"message":"name taken"}}`))
		}))
		// no insert expectation: failed provider calls stay inert

		body, _ := json.Marshal(map[string]string{"name": "taken"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", bytes.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "name taken")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("requires a name", func(t *testing.T) {
		r, _ := setupProjectRouter(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			t.Error("provider must not be called without a name")
		}))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", bytes.NewBufferString(`{}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func expectProjectRow(mock sqlmock.Sqlmock, id string) {
	rows := sqlmock.NewRows([]string{"id", "vercel_id", "name", "framework", "response_data", "created_at", "updated_at"}).
		AddRow(id, "prj_123", "my-site", "nextjs", []byte(`{}`), time.Now(), time.Now())
	mock.ExpectQuery("select (.+) from projects").
		WithArgs(id, "user-1").
		WillReturnRows(rows)
}

func TestDeleteProjectEndpoint(t *testing.T) {
	t.Run("reports both halves", func(t *testing.T) {
		r, mock := setupProjectRouter(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, http.MethodDelete, req.Method)
			assert.Equal(t, "/projects/prj_123", req.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))

		expectProjectRow(mock, "proj-1")
		mock.ExpectExec("delete from projects").
			WithArgs("proj-1", "user-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/projects/proj-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			OK              bool `json:"ok"`
			LocalDeleted    bool `json:"local_deleted"`
			ProviderDeleted bool `json:"provider_deleted"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.OK)
		assert.True(t, resp.LocalDeleted)
		assert.True(t, resp.ProviderDeleted)
	})

	t.Run("local delete survives provider failure", func(t *testing.T) {
		r, mock := setupProjectRouter(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))

		expectProjectRow(mock, "proj-1")
		mock.ExpectExec("delete from projects").
			WithArgs("proj-1", "user-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/projects/proj-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"provider_deleted":false`)
		assert.Contains(t, w.Body.String(), `"local_deleted":true`)
	})

	t.Run("unknown project", func(t *testing.T) {
		r, mock := setupProjectRouter(t, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {}))

		mock.ExpectQuery("select (.+) from projects").
			WithArgs("missing", "user-1").
			WillReturnError(sql.ErrNoRows)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/projects/missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
