package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gearshare-backend/internal/logger"

	"github.com/google/uuid"
)

type pendingUpload struct {
	key         string
	contentType string
	expiresAt   time.Time
}

// MockStorageService implements photo storage on the local filesystem, with
// upload URLs served by this process.
type MockStorageService struct {
	baseURL   string // Server URL (e.g., "http://localhost:8080")
	imagesDir string
	now       func() time.Time

	mu      sync.Mutex
	pending map[string]pendingUpload
}

// NewMockStorageService creates a new mock storage service
func NewMockStorageService(baseURL, uploadsDir string) (*MockStorageService, error) {
	imagesDir := filepath.Join(uploadsDir, "images")
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create images directory: %w", err)
	}

	return &MockStorageService{
		baseURL:   strings.TrimRight(baseURL, "/"),
		imagesDir: imagesDir,
		now:       time.Now,
		pending:   make(map[string]pendingUpload),
	}, nil
}

// GeneratePresignedUploadURL registers a one-shot token and returns the mock
// upload URL pointing to the server.
func (m *MockStorageService) GeneratePresignedUploadURL(
	ctx context.Context,
	key string,
	contentType string,
	expiresIn time.Duration,
) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	token := uuid.New().String()

	m.mu.Lock()
	m.pending[token] = pendingUpload{key: key, contentType: contentType, expiresAt: m.now().Add(expiresIn)}
	m.mu.Unlock()

	return fmt.Sprintf("%s/api/v1/upload/%s?key=%s", m.baseURL, token, url.QueryEscape(key)), nil
}

// DownloadURL returns the URL the download handler serves the key from.
func (m *MockStorageService) DownloadURL(key string) string {
	return fmt.Sprintf("%s/api/v1/images/%s", m.baseURL, key)
}

// Redeem consumes an upload token. The token must be unexpired and issued for key.
func (m *MockStorageService) Redeem(token, key string) (contentType string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.pending[token]
	if !ok || m.now().After(p.expiresAt) {
		delete(m.pending, token)
		return "", ErrUnknownUpload
	}
	if p.key != key {
		return "", ErrKeyMismatch
	}
	delete(m.pending, token)
	return p.contentType, nil
}

// FileExists checks if file exists in local filesystem
func (m *MockStorageService) FileExists(ctx context.Context, key string) (bool, int64, error) {
	fullPath, err := m.path(key)
	if err != nil {
		return false, 0, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, info.Size(), nil
}

// DeleteFile deletes file from local filesystem
func (m *MockStorageService) DeleteFile(ctx context.Context, key string) error {
	fullPath, err := m.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// SaveFile saves uploaded file to local filesystem
func (m *MockStorageService) SaveFile(key string, reader io.Reader) error {
	fullPath, err := m.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	n, err := io.Copy(file, reader)
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	logger.Debug("Stored inspection photo", "key", key, "bytes", n)
	return nil
}

// ReadFile opens a stored file for reading
func (m *MockStorageService) ReadFile(key string) (io.ReadCloser, error) {
	fullPath, err := m.path(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

func (m *MockStorageService) path(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(m.imagesDir, filepath.FromSlash(key)), nil
}

// validateKey keeps keys inside the images directory.
func validateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") {
		return fmt.Errorf("invalid storage key %q", key)
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." || part == "" {
			return fmt.Errorf("invalid storage key %q", key)
		}
	}
	return nil
}
