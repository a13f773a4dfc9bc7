package upload_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"media-vault/internal/adapters/repository"
	"media-vault/internal/adapters/storage"
	"media-vault/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func allParts(session *domain.UploadSession) []domain.UploadPart {
	parts := make([]domain.UploadPart, 0, session.TotalChunks)
	for n := 1; n <= session.TotalChunks; n++ {
		parts = append(parts, domain.UploadPart{PartNumber: n, ETag: fmt.Sprintf("etag%d", n)})
	}
	return parts
}

func TestUploadService_CompleteSession_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	service := newTestService(mockUow, mockStorage)

	principal := memberPrincipal()
	session := activeSession(principal.ID)
	parts := allParts(session)

	mockUow.GetSessionRepoMock().On("FindByID", ctx, session.ID).Return(session, nil)
	mockUow.GetSessionRepoMock().On("ListParts", ctx, session.ID).Return(parts, nil)
	mockStorage.On("CompleteMultipartUpload", ctx, session.StorageKey, session.RemoteUploadID, parts).
		Return("checksum-1", nil)
	mockStorage.On("StatObject", ctx, session.StorageKey).Return(&domain.ObjectInfo{
		Key:         session.StorageKey,
		SizeBytes:   session.TotalSizeBytes,
		ETag:        "checksum-1",
		ContentType: session.MimeType,
	}, nil)
	mockUow.On("Execute", ctx, mock.Anything).Return(nil)
	mockUow.GetAssetRepoMock().On("Create", ctx, mock.MatchedBy(func(a domain.StoredAsset) bool {
		return a.StorageKey == session.StorageKey &&
			a.OwnerID == principal.ID &&
			a.SizeBytes == session.TotalSizeBytes &&
			a.Checksum == "checksum-1" &&
			a.Category == domain.CategoryDeliverable &&
			a.Visibility == domain.VisibilityRestricted
	})).Return(nil)
	mockUow.GetSessionRepoMock().On("UpdateStatus", ctx, session.ID, domain.UploadSessionStatusCompleted).Return(nil)

	// Act
	asset, err := service.CompleteSession(ctx, principal, session.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, session.StorageKey, asset.StorageKey)
	assert.Equal(t, session.TotalSizeBytes, asset.SizeBytes)
	mockUow.AssertExpectations(t)
	mockStorage.AssertExpectations(t)
}

func TestUploadService_CompleteSession_IncompleteListsMissingParts(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	service := newTestService(mockUow, mockStorage)

	principal := memberPrincipal()
	session := activeSession(principal.ID)

	mockUow.GetSessionRepoMock().On("FindByID", ctx, session.ID).Return(session, nil)
	mockUow.GetSessionRepoMock().On("ListParts", ctx, session.ID).
		Return([]domain.UploadPart{{PartNumber: 2, ETag: "etag2"}}, nil)

	// Act
	asset, err := service.CompleteSession(ctx, principal, session.ID)

	// Assert
	require.Nil(t, asset)
	assert.ErrorIs(t, err, domain.ErrIncomplete)
	var incomplete *domain.IncompleteError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []int{1, 3}, incomplete.Missing)
	mockStorage.AssertNotCalled(t, "CompleteMultipartUpload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadService_CompleteSession_SecondCallReturnsSameAsset(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	service := newTestService(mockUow, mockStorage)

	principal := memberPrincipal()
	session := activeSession(principal.ID)
	session.Status = domain.UploadSessionStatusCompleted
	existing := &domain.StoredAsset{ID: uuid.New(), StorageKey: session.StorageKey}

	mockUow.GetSessionRepoMock().On("FindByID", ctx, session.ID).Return(session, nil)
	mockUow.GetAssetRepoMock().On("FindByStorageKey", ctx, session.StorageKey).Return(existing, nil)

	// Act
	asset, err := service.CompleteSession(ctx, principal, session.ID)

	// Assert: no new asset is minted, nothing touches the backend
	require.NoError(t, err)
	assert.Equal(t, existing.ID, asset.ID)
	mockStorage.AssertNotCalled(t, "CompleteMultipartUpload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockUow.GetAssetRepoMock().AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUploadService_CompleteSession_BackendRejectionKeepsSessionOpen(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	service := newTestService(mockUow, mockStorage)

	principal := memberPrincipal()
	session := activeSession(principal.ID)
	parts := allParts(session)

	mockUow.GetSessionRepoMock().On("FindByID", ctx, session.ID).Return(session, nil)
	mockUow.GetSessionRepoMock().On("ListParts", ctx, session.ID).Return(parts, nil)
	mockStorage.On("CompleteMultipartUpload", ctx, session.StorageKey, session.RemoteUploadID, parts).
		Return("", errors.New("InvalidPart"))

	// Act
	asset, err := service.CompleteSession(ctx, principal, session.ID)

	// Assert: the session is not flipped, the client may retry after re-uploading
	require.Nil(t, asset)
	assert.ErrorIs(t, err, domain.ErrBackendRejected)
	mockUow.GetSessionRepoMock().AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadService_CompleteSession_SizeMismatchFailsVerification(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	service := newTestService(mockUow, mockStorage)

	principal := memberPrincipal()
	session := activeSession(principal.ID)
	parts := allParts(session)

	mockUow.GetSessionRepoMock().On("FindByID", ctx, session.ID).Return(session, nil)
	mockUow.GetSessionRepoMock().On("ListParts", ctx, session.ID).Return(parts, nil)
	mockStorage.On("CompleteMultipartUpload", ctx, session.StorageKey, session.RemoteUploadID, parts).
		Return("checksum-1", nil)
	mockStorage.On("StatObject", ctx, session.StorageKey).Return(&domain.ObjectInfo{
		Key:       session.StorageKey,
		SizeBytes: session.TotalSizeBytes - 1,
	}, nil)

	// Act
	asset, err := service.CompleteSession(ctx, principal, session.ID)

	// Assert
	require.Nil(t, asset)
	assert.ErrorIs(t, err, domain.ErrVerificationFailed)
	mockUow.GetAssetRepoMock().AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUploadService_CompleteSession_ConcurrentCompletionLosesRaceGracefully(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	service := newTestService(mockUow, mockStorage)

	principal := memberPrincipal()
	session := activeSession(principal.ID)
	parts := allParts(session)
	winner := &domain.StoredAsset{ID: uuid.New(), StorageKey: session.StorageKey}

	mockUow.GetSessionRepoMock().On("FindByID", ctx, session.ID).Return(session, nil)
	mockUow.GetSessionRepoMock().On("ListParts", ctx, session.ID).Return(parts, nil)
	mockStorage.On("CompleteMultipartUpload", ctx, session.StorageKey, session.RemoteUploadID, parts).
		Return("checksum-1", nil)
	mockStorage.On("StatObject", ctx, session.StorageKey).Return(&domain.ObjectInfo{
		Key:         session.StorageKey,
		SizeBytes:   session.TotalSizeBytes,
		ETag:        "checksum-1",
		ContentType: session.MimeType,
	}, nil)
	mockUow.On("Execute", ctx, mock.Anything).Return(nil)
	mockUow.GetAssetRepoMock().On("Create", ctx, mock.Anything).
		Return(fmt.Errorf("asset: %w", domain.ErrAlreadyExists))
	mockUow.GetAssetRepoMock().On("FindByStorageKey", ctx, session.StorageKey).Return(winner, nil)

	// Act
	asset, err := service.CompleteSession(ctx, principal, session.ID)

	// Assert: the loser hands back the winner's asset
	require.NoError(t, err)
	assert.Equal(t, winner.ID, asset.ID)
}
