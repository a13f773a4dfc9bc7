package storage

import (
	"context"
	"time"

	"media-vault/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func NewMockStorage() *MockStorage {
	return &MockStorage{}
}

func (m *MockStorage) PresignPut(ctx context.Context, key string, mimeType string, maxSizeBytes int64) (string, map[string]string, *time.Time, error) {
	args := m.Called(ctx, key, mimeType, maxSizeBytes)
	return args.String(0), args.Get(1).(map[string]string), args.Get(2).(*time.Time), args.Error(3)
}

func (m *MockStorage) PresignDownload(ctx context.Context, key string) (string, *time.Time, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Get(1).(*time.Time), args.Error(2)
}

func (m *MockStorage) InitMultipartUpload(ctx context.Context, key string, mimeType string) (string, error) {
	args := m.Called(ctx, key, mimeType)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) PresignPart(ctx context.Context, key string, uploadID string, partNumber int) (string, map[string]string, *time.Time, error) {
	args := m.Called(ctx, key, uploadID, partNumber)
	return args.String(0), args.Get(1).(map[string]string), args.Get(2).(*time.Time), args.Error(3)
}

func (m *MockStorage) CompleteMultipartUpload(ctx context.Context, key string, uploadID string, parts []domain.UploadPart) (string, error) {
	args := m.Called(ctx, key, uploadID, parts)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) AbortMultipartUpload(ctx context.Context, key string, uploadID string) error {
	args := m.Called(ctx, key, uploadID)
	return args.Error(0)
}

func (m *MockStorage) StatObject(ctx context.Context, key string) (*domain.ObjectInfo, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(*domain.ObjectInfo), args.Error(1)
}

func (m *MockStorage) DeleteObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
