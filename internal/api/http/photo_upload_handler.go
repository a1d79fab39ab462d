package http

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"gearshare-backend/internal/logger"
	"gearshare-backend/internal/storage"

	"github.com/gorilla/mux"
)

// maxPhotoBytes caps one inspection photo upload.
const maxPhotoBytes = 15 << 20

// PhotoUploadHandler serves the upload and download URLs handed out by mock storage.
type PhotoUploadHandler struct {
	store *storage.MockStorageService
}

func NewPhotoUploadHandler(store *storage.MockStorageService) *PhotoUploadHandler {
	return &PhotoUploadHandler{store: store}
}

// HandleUpload accepts the PUT to a presigned upload URL.
func (h *PhotoUploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}

	expected, err := h.store.Redeem(token, key)
	if err != nil {
		status := http.StatusForbidden
		if errors.Is(err, storage.ErrUnknownUpload) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	if ct := r.Header.Get("Content-Type"); ct != expected {
		http.Error(w, "Content type does not match the upload request", http.StatusBadRequest)
		return
	}

	if err := h.store.SaveFile(key, http.MaxBytesReader(w, r.Body, maxPhotoBytes)); err != nil {
		logger.Error("Failed to store photo upload", "key", key, "error", err)
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}

	// Mimic the S3 response
	w.Header().Set("ETag", `"mock-etag-success"`)
	w.WriteHeader(http.StatusOK)
}

// HandleDownload streams a stored photo.
func (h *PhotoUploadHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	file, err := h.store.ReadFile(key)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".heic":
		contentType = "image/heic"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	if _, err := io.Copy(w, file); err != nil {
		logger.Warn("Photo download interrupted", "key", key, "error", err)
	}
}

// RegisterPhotoRoutes registers the mock storage HTTP endpoints
func RegisterPhotoRoutes(router *mux.Router, store *storage.MockStorageService) {
	handler := NewPhotoUploadHandler(store)
	router.HandleFunc("/api/v1/upload/{token}", handler.HandleUpload).Methods(http.MethodPut)
	router.HandleFunc("/api/v1/images/{key:.+}", handler.HandleDownload).Methods(http.MethodGet)
}
