package port

import (
	"context"
	"media-vault/internal/core/domain"
	"time"
)

// ObjectStorage is an interface to define object storage backend interactions
type ObjectStorage interface {
	PresignPut(ctx context.Context, key string, mimeType string, maxSizeBytes int64) (string, map[string]string, *time.Time, error)
	PresignDownload(ctx context.Context, key string) (string, *time.Time, error)
	InitMultipartUpload(ctx context.Context, key string, mimeType string) (string, error)
	PresignPart(ctx context.Context, key string, uploadID string, partNumber int) (string, map[string]string, *time.Time, error)
	CompleteMultipartUpload(ctx context.Context, key string, uploadID string, parts []domain.UploadPart) (string, error)
	AbortMultipartUpload(ctx context.Context, key string, uploadID string) error
	StatObject(ctx context.Context, key string) (*domain.ObjectInfo, error)
	DeleteObject(ctx context.Context, key string) error
}
