package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrValidation = errors.New("validation error")

const signedURLTTL = 24 * time.Hour

// ObjectStorage is the blob backend for site imagery (hero shots, recipe
// and blog photos).
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type Service struct {
	storage ObjectStorage
}

type Image struct {
	ObjectKey string
	URL       string
}

func NewService(storage ObjectStorage) *Service {
	return &Service{storage: storage}
}

// UploadImage stores one image under a section prefix (events, recipes,
// blog, site) and returns a presigned URL for immediate display.
func (s *Service) UploadImage(ctx context.Context, section, fileName, contentType string, body io.Reader, size int64) (Image, error) {
	if body == nil || size <= 0 {
		return Image{}, ErrValidation
	}
	if s.storage == nil {
		return Image{}, fmt.Errorf("object storage is not configured")
	}

	if err := s.storage.EnsureBucket(ctx); err != nil {
		return Image{}, fmt.Errorf("ensure bucket: %w", err)
	}

	objectKey := buildObjectKey(section, fileName)

	if strings.TrimSpace(contentType) == "" {
		contentType = "application/octet-stream"
	}

	if err := s.storage.Put(ctx, objectKey, body, size, contentType); err != nil {
		return Image{}, fmt.Errorf("put object: %w", err)
	}

	url, err := s.storage.PresignGet(ctx, objectKey, signedURLTTL)
	if err != nil {
		_ = s.storage.Delete(ctx, objectKey)
		return Image{}, fmt.Errorf("presign image url: %w", err)
	}

	return Image{
		ObjectKey: objectKey,
		URL:       url,
	}, nil
}

func (s *Service) ImageURL(ctx context.Context, objectKey string) (string, error) {
	if strings.TrimSpace(objectKey) == "" {
		return "", ErrValidation
	}
	if s.storage == nil {
		return "", fmt.Errorf("object storage is not configured")
	}

	url, err := s.storage.PresignGet(ctx, objectKey, signedURLTTL)
	if err != nil {
		return "", fmt.Errorf("presign image url: %w", err)
	}

	return url, nil
}

func buildObjectKey(section, fileName string) string {
	section = strings.TrimSpace(strings.ToLower(section))
	if section == "" {
		section = "site"
	}

	ext := strings.ToLower(path.Ext(fileName))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
	default:
		ext = ".jpg"
	}

	return section + "/" + uuid.NewString() + ext
}
