package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUnknownUpload = errors.New("upload token is unknown or expired")
	ErrKeyMismatch   = errors.New("upload token was issued for another key")
)

// PhotoStorage stores inspection photos. The mock implementation serves files
// from local disk; a cloud backend only needs the same presigned URL surface.
type PhotoStorage interface {
	// GeneratePresignedUploadURL returns a one-shot URL the client PUTs the
	// photo to.
	GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error)

	// DownloadURL is the stable URL recorded on the inspection photo.
	DownloadURL(key string) string

	// FileExists checks if a file exists and returns its size
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)

	DeleteFile(ctx context.Context, key string) error
}

// PhotoKey builds the object key of one inspection photo. Every upload gets a
// fresh key so a retake never overwrites the evidence it replaces.
func PhotoKey(bookingID int32, direction, angleID, contentType string) string {
	ext := ".jpg"
	switch contentType {
	case "image/png":
		ext = ".png"
	case "image/heic":
		ext = ".heic"
	}
	angle := strings.ReplaceAll(strings.ToLower(angleID), "/", "_")
	return fmt.Sprintf("inspections/%d/%s/%s-%s%s", bookingID, strings.ToLower(direction), angle, uuid.NewString(), ext)
}
