package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"gearshare-backend/internal/storage"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) (*mux.Router, *storage.MockStorageService) {
	t.Helper()
	store, err := storage.NewMockStorageService("http://example.test", t.TempDir())
	require.NoError(t, err)
	r := mux.NewRouter()
	RegisterPhotoRoutes(r, store)
	return r, store
}

func uploadPath(t *testing.T, rawURL string) string {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return u.RequestURI()
}

func TestPhotoUpload_RoundTrip(t *testing.T) {
	router, store := newRouter(t)
	key := "inspections/11/outbound/bow-abc.jpg"

	uploadURL, err := store.GeneratePresignedUploadURL(context.Background(), key, "image/jpeg", time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, uploadPath(t, uploadURL), strings.NewReader("photo"))
	req.Header.Set("Content-Type", "image/jpeg")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	get := httptest.NewRequest(http.MethodGet, uploadPath(t, store.DownloadURL(key)), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, get)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "photo", rec.Body.String())
}

func TestPhotoUpload_Rejections(t *testing.T) {
	router, store := newRouter(t)
	key := "inspections/11/outbound/bow-abc.jpg"

	t.Run("unknown token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/v1/upload/nope?key="+url.QueryEscape(key), strings.NewReader("x"))
		req.Header.Set("Content-Type", "image/jpeg")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/v1/upload/nope", strings.NewReader("x"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong content type", func(t *testing.T) {
		uploadURL, err := store.GeneratePresignedUploadURL(context.Background(), key, "image/jpeg", time.Minute)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPut, uploadPath(t, uploadURL), strings.NewReader("x"))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing file", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/images/inspections/1/none.jpg", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
