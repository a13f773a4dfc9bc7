package cleanup_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"media-vault/internal/adapters/repository"
	"media-vault/internal/adapters/storage"
	"media-vault/internal/core/domain"
	"media-vault/internal/core/service/cleanup"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func expiredSession() domain.UploadSession {
	return domain.UploadSession{
		ID:             uuid.New(),
		RemoteUploadID: "remote-" + uuid.NewString(),
		StorageKey:     "restricted/deliverable/" + uuid.NewString() + "/1-clip.mp4",
		Status:         domain.UploadSessionStatusInProgress,
		ExpiresAt:      time.Now().Add(-time.Hour),
	}
}

func TestCleanupService_CleanupExpiredSessions_AbortsAndMarksExpired(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	service := cleanup.NewCleanupService(mockUow, mockStorage, testLogger)

	now := time.Now()
	first := expiredSession()
	second := expiredSession()

	mockUow.GetSessionRepoMock().On("FindAllExpired", ctx, now).
		Return([]domain.UploadSession{first, second}, nil)
	mockStorage.On("AbortMultipartUpload", ctx, first.StorageKey, first.RemoteUploadID).Return(nil)
	mockStorage.On("AbortMultipartUpload", ctx, second.StorageKey, second.RemoteUploadID).Return(nil)
	mockUow.GetSessionRepoMock().On("UpdateStatus", ctx, first.ID, domain.UploadSessionStatusExpired).Return(nil)
	mockUow.GetSessionRepoMock().On("UpdateStatus", ctx, second.ID, domain.UploadSessionStatusExpired).Return(nil)

	// Act
	err := service.CleanupExpiredSessions(ctx, now)

	// Assert
	assert.NoError(t, err)
	mockUow.AssertExpectations(t)
	mockStorage.AssertExpectations(t)
}

func TestCleanupService_CleanupExpiredSessions_AbortFailureKeepsSessionForNextSweep(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	service := cleanup.NewCleanupService(mockUow, mockStorage, testLogger)

	now := time.Now()
	broken := expiredSession()
	healthy := expiredSession()

	mockUow.GetSessionRepoMock().On("FindAllExpired", ctx, now).
		Return([]domain.UploadSession{broken, healthy}, nil)
	mockStorage.On("AbortMultipartUpload", ctx, broken.StorageKey, broken.RemoteUploadID).
		Return(errors.New("backend unavailable"))
	mockStorage.On("AbortMultipartUpload", ctx, healthy.StorageKey, healthy.RemoteUploadID).Return(nil)
	mockUow.GetSessionRepoMock().On("UpdateStatus", ctx, healthy.ID, domain.UploadSessionStatusExpired).Return(nil)

	// Act
	err := service.CleanupExpiredSessions(ctx, now)

	// Assert: the failed one is not marked, the healthy one still is
	assert.NoError(t, err)
	mockUow.GetSessionRepoMock().AssertNotCalled(t, "UpdateStatus", ctx, broken.ID, domain.UploadSessionStatusExpired)
	mockUow.GetSessionRepoMock().AssertCalled(t, "UpdateStatus", ctx, healthy.ID, domain.UploadSessionStatusExpired)
}

func TestCleanupService_CleanupExpiredSessions_ListFailure(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	service := cleanup.NewCleanupService(mockUow, mockStorage, testLogger)

	now := time.Now()
	dbErr := errors.New("connection reset")
	mockUow.GetSessionRepoMock().On("FindAllExpired", ctx, now).
		Return([]domain.UploadSession(nil), dbErr)

	// Act
	err := service.CleanupExpiredSessions(ctx, now)

	// Assert
	assert.ErrorIs(t, err, dbErr)
}
