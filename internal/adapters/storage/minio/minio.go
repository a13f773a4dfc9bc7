package minio

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"media-vault/internal/config"
	"media-vault/internal/core/domain"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Adapter is an adapter for minio
type Adapter struct {
	client *minio.Client
	core   *minio.Core
	config config.MinioConfig
	logger *slog.Logger
}

// NewAdapter returns Adapter
func NewAdapter(ctx context.Context, cfg config.MinioConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	core := minio.Core{Client: client}
	return &Adapter{client: client, config: cfg, core: &core, logger: logger}, nil
}

// PresignPut generates a time-boxed signed URL authorizing one PUT of one
// specific key. The backend credentials never leave the process.
func (a *Adapter) PresignPut(ctx context.Context, key string, mimeType string, maxSizeBytes int64) (string, map[string]string, *time.Time, error) {

	requestHeaders := make(http.Header)
	requestHeaders.Set("Content-Type", mimeType)

	presignedURL, err := a.client.PresignHeader(ctx, http.MethodPut, a.config.BucketName, key, a.config.PutPresignedDuration, nil, requestHeaders)
	if err != nil {
		return "", nil, nil, fmt.Errorf("failed to generate presigned PUT URL: %w", err)
	}

	expiresAt := time.Now().Add(a.config.PutPresignedDuration)

	return presignedURL.String(), headerToMap(requestHeaders), &expiresAt, nil
}

// InitMultipartUpload opens a multipart session on the backend
func (a *Adapter) InitMultipartUpload(ctx context.Context, key string, mimeType string) (string, error) {
	opts := minio.PutObjectOptions{
		ContentType: mimeType,
	}
	uploadID, err := a.core.NewMultipartUpload(ctx, a.config.BucketName, key, opts)
	if err != nil {
		return "", fmt.Errorf("failed to init multipart upload: %w", err)
	}
	return uploadID, nil
}

// PresignPart generates a signed URL scoped to one part of a multipart session
func (a *Adapter) PresignPart(ctx context.Context, key string, uploadID string, partNumber int) (string, map[string]string, *time.Time, error) {
	reqParams := make(url.Values)
	reqParams.Set("partNumber", fmt.Sprintf("%d", partNumber))
	reqParams.Set("uploadId", uploadID)

	presignedURL, err := a.core.Presign(ctx, http.MethodPut, a.config.BucketName, key, a.config.PartPresignedDuration, reqParams)
	if err != nil {
		return "", nil, nil, fmt.Errorf("failed to generate presigned URL for part %d: %w", partNumber, err)
	}

	expiresAt := time.Now().Add(a.config.PartPresignedDuration)
	return presignedURL.String(), map[string]string{}, &expiresAt, nil
}

// CompleteMultipartUpload assembles the uploaded parts. Parts are presented
// in strictly ascending part-number order regardless of upload order; the
// backend rejects anything else.
func (a *Adapter) CompleteMultipartUpload(ctx context.Context, key string, uploadID string, parts []domain.UploadPart) (string, error) {

	sort.Slice(parts, func(i, j int) bool {
		return parts[i].PartNumber < parts[j].PartNumber
	})

	completeParts := make([]minio.CompletePart, 0, len(parts))
	for _, part := range parts {
		completeParts = append(completeParts, minio.CompletePart{
			PartNumber: part.PartNumber,
			ETag:       strings.Trim(part.ETag, "\""),
		})
	}

	info, err := a.core.CompleteMultipartUpload(ctx, a.config.BucketName, key, uploadID, completeParts, minio.PutObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to complete multipart upload: %w", err)
	}

	return strings.Trim(info.ETag, "\""), nil
}

// AbortMultipartUpload releases a multipart session and its parts
func (a *Adapter) AbortMultipartUpload(ctx context.Context, key string, uploadID string) error {
	err := a.core.AbortMultipartUpload(ctx, a.config.BucketName, key, uploadID)
	if err != nil {
		return fmt.Errorf("failed to abort multipart upload: %w", err)
	}

	a.logger.Info("multipart upload aborted",
		slog.String("key", key),
		slog.String("uploadID", uploadID))

	return nil
}

// StatObject issues a metadata-only existence and size check (HEAD)
func (a *Adapter) StatObject(ctx context.Context, key string) (*domain.ObjectInfo, error) {
	info, err := a.client.StatObject(ctx, a.config.BucketName, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to stat object: %w", err)
	}

	return &domain.ObjectInfo{
		Key:         info.Key,
		SizeBytes:   info.Size,
		ETag:        strings.Trim(info.ETag, "\""),
		ContentType: info.ContentType,
	}, nil
}

// DeleteObject deletes an object from storage
func (a *Adapter) DeleteObject(ctx context.Context, key string) error {
	err := a.client.RemoveObject(ctx, a.config.BucketName, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	a.logger.Info("object deleted",
		slog.String("key", key),
		slog.String("bucket", a.config.BucketName))

	return nil
}

// PresignDownload generates a presigned URL for downloading an object
func (a *Adapter) PresignDownload(ctx context.Context, key string) (string, *time.Time, error) {
	presignedURL, err := a.client.PresignedGetObject(ctx, a.config.BucketName, key, a.config.GetPresignedDuration, nil)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate presigned download URL: %w", err)
	}

	expiresAt := time.Now().Add(a.config.GetPresignedDuration)

	return presignedURL.String(), &expiresAt, nil
}

func headerToMap(headers http.Header) map[string]string {
	result := make(map[string]string)
	for key, values := range headers {
		if len(values) > 0 {
			result[key] = values[0]
		}
	}
	return result
}
