package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLibraryWorkflow walks a fresh store through the usual client session.
func TestLibraryWorkflow(t *testing.T) {
	app := setupTestApp(t, defaultPagination())

	w := app.do(t, http.MethodPost, "/authors", map[string]any{"name": "Tolstoy"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(1), decode[map[string]any](t, w)["id"])

	w = app.do(t, http.MethodPost, "/books", map[string]any{"title": "War and Peace", "author_id": 1})
	require.Equal(t, http.StatusCreated, w.Code)
	book := decode[map[string]any](t, w)
	assert.Equal(t, float64(1), book["id"])
	assert.Nil(t, book["year"])

	w = app.do(t, http.MethodGet, "/books/search/war", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	w = app.do(t, http.MethodPut, "/books/1", map[string]any{"year": 1869})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[map[string]any](t, w)
	assert.Equal(t, float64(1869), updated["year"])
	assert.Equal(t, "War and Peace", updated["title"])

	w = app.do(t, http.MethodGet, "/authors/1/books", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	w = app.do(t, http.MethodDelete, "/books/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/books/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodGet, "/authors/1/books", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
