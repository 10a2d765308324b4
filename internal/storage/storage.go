package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage defines the interface for object storage operations.
type FileStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL that allows a PUT of
	// one object directly to the storage provider.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET
	// requests for the object.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}

var (
	ErrUnsupportedContentType = errors.New("unsupported content type")
	ErrStorageDisabled        = errors.New("object storage is not configured")
)

// imageExtensions maps the accepted avatar content types to file extensions.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// AvatarPrefix is the key prefix under which every avatar of userID lives.
func AvatarPrefix(userID string) string {
	return "avatars/" + userID + "/"
}

// NewAvatarKey returns a fresh object key for an avatar upload.
func NewAvatarKey(userID, contentType string) (string, error) {
	ext, ok := imageExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", ErrUnsupportedContentType
	}
	return AvatarPrefix(userID) + uuid.NewString() + ext, nil
}

// OwnsAvatarKey reports whether key was issued for userID.
func OwnsAvatarKey(userID, key string) bool {
	rest, ok := strings.CutPrefix(key, AvatarPrefix(userID))
	return ok && rest != "" && !strings.Contains(rest, "/")
}

// disabledStorage is used when no bucket is configured.
type disabledStorage struct{}

// NewDisabledStorage returns a FileStorage whose every call fails with ErrStorageDisabled.
func NewDisabledStorage() FileStorage { return disabledStorage{} }

func (disabledStorage) GeneratePresignedUploadURL(context.Context, string, string, time.Duration) (string, error) {
	return "", ErrStorageDisabled
}

func (disabledStorage) GeneratePresignedDownloadURL(context.Context, string, time.Duration) (string, error) {
	return "", ErrStorageDisabled
}

func (disabledStorage) DeleteObject(context.Context, string) error {
	return ErrStorageDisabled
}
