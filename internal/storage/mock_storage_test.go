package storage

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotoKey(t *testing.T) {
	key := PhotoKey(11, "OUTBOUND", "Hull/Port", "image/png")
	assert.True(t, strings.HasPrefix(key, "inspections/11/outbound/hull_port-"), key)
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.NotEqual(t, key, PhotoKey(11, "OUTBOUND", "Hull/Port", "image/png"))
}

func TestMockStorage_UploadRoundTrip(t *testing.T) {
	s, err := NewMockStorageService("http://localhost:8080/", t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	key := "inspections/11/outbound/bow-1.jpg"

	uploadURL, err := s.GeneratePresignedUploadURL(ctx, key, "image/jpeg", time.Minute)
	require.NoError(t, err)
	assert.Contains(t, uploadURL, "http://localhost:8080/api/v1/upload/")

	token := strings.TrimPrefix(strings.SplitN(uploadURL, "?", 2)[0], "http://localhost:8080/api/v1/upload/")
	_, err = s.Redeem(token, "inspections/11/outbound/stern-1.jpg")
	assert.ErrorIs(t, err, ErrKeyMismatch)

	ct, err := s.Redeem(token, key)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", ct)

	_, err = s.Redeem(token, key)
	assert.ErrorIs(t, err, ErrUnknownUpload, "tokens are single use")

	require.NoError(t, s.SaveFile(key, strings.NewReader("jpeg-bytes")))
	exists, size, err := s.FileExists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, int64(10), size)

	f, err := s.ReadFile(key)
	require.NoError(t, err)
	body, _ := io.ReadAll(f)
	f.Close()
	assert.Equal(t, "jpeg-bytes", string(body))

	assert.Equal(t, "http://localhost:8080/api/v1/images/"+key, s.DownloadURL(key))

	require.NoError(t, s.DeleteFile(ctx, key))
	exists, _, err = s.FileExists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMockStorage_ExpiredToken(t *testing.T) {
	s, err := NewMockStorageService("http://localhost:8080", t.TempDir())
	require.NoError(t, err)
	issued := time.Date(2026, 7, 4, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }

	uploadURL, err := s.GeneratePresignedUploadURL(context.Background(), "a/b.jpg", "image/jpeg", time.Minute)
	require.NoError(t, err)
	token := strings.TrimPrefix(strings.SplitN(uploadURL, "?", 2)[0], "http://localhost:8080/api/v1/upload/")

	s.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = s.Redeem(token, "a/b.jpg")
	assert.ErrorIs(t, err, ErrUnknownUpload)
}

func TestMockStorage_RejectsTraversal(t *testing.T) {
	s, err := NewMockStorageService("http://localhost:8080", t.TempDir())
	require.NoError(t, err)

	assert.Error(t, s.SaveFile("../etc/passwd", strings.NewReader("x")))
	_, err = s.GeneratePresignedUploadURL(context.Background(), "/abs.jpg", "image/jpeg", time.Minute)
	assert.Error(t, err)
}
