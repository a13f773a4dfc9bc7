package repository

import (
	"context"
	"time"

	"media-vault/internal/core/domain"
	"media-vault/internal/core/port"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockGrantRepository struct {
	mock.Mock
}

func NewMockGrantRepository() *MockGrantRepository {
	return &MockGrantRepository{}
}

func (m *MockGrantRepository) Create(ctx context.Context, grant domain.UploadGrant) error {
	args := m.Called(ctx, grant)
	return args.Error(0)
}

func (m *MockGrantRepository) FindByToken(ctx context.Context, token string) (*domain.UploadGrant, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(*domain.UploadGrant), args.Error(1)
}

func (m *MockGrantRepository) MarkUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) error {
	args := m.Called(ctx, id, usedAt)
	return args.Error(0)
}

func (m *MockGrantRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.GrantStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockGrantRepository) FindAllExpired(ctx context.Context, now time.Time) ([]domain.UploadGrant, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.UploadGrant), args.Error(1)
}

type MockUploadSessionRepository struct {
	mock.Mock
}

func NewMockUploadSessionRepository() *MockUploadSessionRepository {
	return &MockUploadSessionRepository{}
}

func (m *MockUploadSessionRepository) Create(ctx context.Context, session domain.UploadSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockUploadSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.UploadSession), args.Error(1)
}

func (m *MockUploadSessionRepository) RecordPart(ctx context.Context, sessionID uuid.UUID, part domain.UploadPart) error {
	args := m.Called(ctx, sessionID, part)
	return args.Error(0)
}

func (m *MockUploadSessionRepository) ListParts(ctx context.Context, sessionID uuid.UUID) ([]domain.UploadPart, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]domain.UploadPart), args.Error(1)
}

func (m *MockUploadSessionRepository) CountParts(ctx context.Context, sessionID uuid.UUID) (int, error) {
	args := m.Called(ctx, sessionID)
	return args.Int(0), args.Error(1)
}

func (m *MockUploadSessionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.UploadSessionStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockUploadSessionRepository) FindAllExpired(ctx context.Context, now time.Time) ([]domain.UploadSession, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.UploadSession), args.Error(1)
}

type MockAssetRepository struct {
	mock.Mock
}

func NewMockAssetRepository() *MockAssetRepository {
	return &MockAssetRepository{}
}

func (m *MockAssetRepository) Create(ctx context.Context, asset domain.StoredAsset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.StoredAsset, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.StoredAsset), args.Error(1)
}

func (m *MockAssetRepository) FindByStorageKey(ctx context.Context, storageKey string) (*domain.StoredAsset, error) {
	args := m.Called(ctx, storageKey)
	return args.Get(0).(*domain.StoredAsset), args.Error(1)
}

type MockUnitOfWork struct {
	mock.Mock
	grantRepo   *MockGrantRepository
	sessionRepo *MockUploadSessionRepository
	assetRepo   *MockAssetRepository
}

func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		grantRepo:   &MockGrantRepository{},
		sessionRepo: &MockUploadSessionRepository{},
		assetRepo:   &MockAssetRepository{},
	}
}

func (m *MockUnitOfWork) GrantRepo() port.GrantRepository {
	return m.grantRepo
}

func (m *MockUnitOfWork) SessionRepo() port.UploadSessionRepository {
	return m.sessionRepo
}

func (m *MockUnitOfWork) AssetRepo() port.AssetRepository {
	return m.assetRepo
}

func (m *MockUnitOfWork) Execute(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	args := m.Called(ctx, fn)

	if err := fn(m); err != nil {
		return err
	}

	return args.Error(0)
}

func (m *MockUnitOfWork) GetGrantRepoMock() *MockGrantRepository {
	return m.grantRepo
}

func (m *MockUnitOfWork) GetSessionRepoMock() *MockUploadSessionRepository {
	return m.sessionRepo
}

func (m *MockUnitOfWork) GetAssetRepoMock() *MockAssetRepository {
	return m.assetRepo
}
