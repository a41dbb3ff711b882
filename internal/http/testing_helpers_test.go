package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	auditsvc "github.com/mrlokans/library-api/internal/audit"
	"github.com/mrlokans/library-api/internal/config"
	"github.com/mrlokans/library-api/internal/database"
	dbaudit "github.com/mrlokans/library-api/internal/database/audit"
	"github.com/mrlokans/library-api/internal/database/authors"
	"github.com/mrlokans/library-api/internal/database/books"
)

type testApp struct {
	db     *database.Database
	audit  *auditsvc.Service
	router *gin.Engine
}

func setupTestDB(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.NewDatabase(config.Database{
		Driver:   config.DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "library.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func setupTestApp(t *testing.T, pagination Pagination) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	svc := auditsvc.NewService(dbaudit.NewRepository(db.DB))
	t.Cleanup(svc.Wait)

	router := NewRouter(RouterConfig{
		Database:    db,
		Books:       books.NewRepository(db.DB),
		Authors:     authors.NewRepository(db.DB),
		Audit:       svc,
		AuditLog:    svc,
		Version:     "test",
		Pagination:  pagination,
		CORSOrigins: []string{"*"},
	})

	return &testApp{db: db, audit: svc, router: router}
}

func defaultPagination() Pagination {
	return Pagination{DefaultLimit: 100}
}

func (a *testApp) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return doRequest(t, a.router, method, path, body)
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (a *testApp) createAuthor(t *testing.T, name string) uint {
	t.Helper()
	w := a.do(t, http.MethodPost, "/authors", map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return uint(decode[map[string]any](t, w)["id"].(float64))
}

func (a *testApp) createBook(t *testing.T, body map[string]any) uint {
	t.Helper()
	w := a.do(t, http.MethodPost, "/books", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return uint(decode[map[string]any](t, w)["id"].(float64))
}
