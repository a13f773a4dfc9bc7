package upload

import (
	"context"

	"media-vault/internal/core/domain"
	"media-vault/internal/core/port"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUploadService is a mock implementation of UploadService
type MockUploadService struct {
	mock.Mock
}

// NewMockUploadService creates a new MockUploadService
func NewMockUploadService() *MockUploadService {
	return &MockUploadService{}
}

func (m *MockUploadService) IssueGrant(ctx context.Context, principal domain.Principal, in port.IssueGrantInput) (*domain.GrantIssue, error) {
	args := m.Called(ctx, principal, in)
	return args.Get(0).(*domain.GrantIssue), args.Error(1)
}

func (m *MockUploadService) CompleteGrant(ctx context.Context, principal domain.Principal, token string) (*domain.StoredAsset, error) {
	args := m.Called(ctx, principal, token)
	return args.Get(0).(*domain.StoredAsset), args.Error(1)
}

func (m *MockUploadService) InitSession(ctx context.Context, principal domain.Principal, in port.InitSessionInput) (*domain.SessionInit, error) {
	args := m.Called(ctx, principal, in)
	return args.Get(0).(*domain.SessionInit), args.Error(1)
}

func (m *MockUploadService) ResumeSession(ctx context.Context, principal domain.Principal, sessionID uuid.UUID) (*domain.SessionResume, error) {
	args := m.Called(ctx, principal, sessionID)
	return args.Get(0).(*domain.SessionResume), args.Error(1)
}

func (m *MockUploadService) ReportPart(ctx context.Context, principal domain.Principal, sessionID uuid.UUID, partNumber int, etag string) error {
	args := m.Called(ctx, principal, sessionID, partNumber, etag)
	return args.Error(0)
}

func (m *MockUploadService) CompleteSession(ctx context.Context, principal domain.Principal, sessionID uuid.UUID) (*domain.StoredAsset, error) {
	args := m.Called(ctx, principal, sessionID)
	return args.Get(0).(*domain.StoredAsset), args.Error(1)
}

func (m *MockUploadService) AbortSession(ctx context.Context, principal domain.Principal, sessionID uuid.UUID) error {
	args := m.Called(ctx, principal, sessionID)
	return args.Error(0)
}

func (m *MockUploadService) GetAssetDownload(ctx context.Context, principal domain.Principal, assetID uuid.UUID) (*domain.StoredAsset, string, error) {
	args := m.Called(ctx, principal, assetID)
	return args.Get(0).(*domain.StoredAsset), args.String(1), args.Error(2)
}
