package upload

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"media-vault/internal/config"
	"media-vault/internal/core/domain"
	"media-vault/internal/core/port"
	"media-vault/internal/core/service/policy"

	"github.com/google/uuid"
)

// Object storage backends cap multipart uploads at 10000 parts.
const maxPartsPerUpload = 10000

type uploadService struct {
	uow       port.UnitOfWork
	storage   port.ObjectStorage
	gate      *policy.Gate
	publisher port.EventPublisher
	uploadCfg config.UploadConfig
	logger    *slog.Logger
}

// NewUploadService creates a new upload orchestration service
func NewUploadService(
	uow port.UnitOfWork,
	storage port.ObjectStorage,
	gate *policy.Gate,
	publisher port.EventPublisher,
	cfg config.UploadConfig,
	logger *slog.Logger,
) port.UploadService {
	return &uploadService{
		uow:       uow,
		storage:   storage,
		gate:      gate,
		publisher: publisher,
		uploadCfg: cfg,
		logger:    logger,
	}
}

// newToken mints an unguessable grant token.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate grant token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// findOwnedSession loads a session and enforces the ownership rule shared by
// every session-scoped operation.
func (s *uploadService) findOwnedSession(ctx context.Context, principal domain.Principal, sessionID uuid.UUID) (*domain.UploadSession, error) {
	session, err := s.uow.SessionRepo().FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.OwnerID != principal.ID {
		return nil, fmt.Errorf("%w: session belongs to another owner", domain.ErrForbidden)
	}
	return session, nil
}

// requireActive fails closed on expiry. Expiry is enforced lazily at read
// time; the background sweep only releases backend resources.
func requireActive(session *domain.UploadSession, now time.Time) error {
	switch session.Status {
	case domain.UploadSessionStatusExpired:
		return fmt.Errorf("%w: session expired at %s", domain.ErrExpired, session.ExpiresAt.Format(time.RFC3339))
	case domain.UploadSessionStatusAborted:
		return fmt.Errorf("%w: session was aborted", domain.ErrSessionNotFound)
	case domain.UploadSessionStatusCompleted:
		return fmt.Errorf("%w: session already completed", domain.ErrAlreadyExists)
	}
	if now.After(session.ExpiresAt) {
		return fmt.Errorf("%w: session expired at %s", domain.ErrExpired, session.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}

// publishStored hands the completion notification to the broker. Failures are
// logged and swallowed: the asset is already durable and verified.
func (s *uploadService) publishStored(ctx context.Context, asset *domain.StoredAsset) {
	if s.publisher == nil {
		return
	}
	event := domain.AssetStoredEvent{
		AssetID:    asset.ID,
		OwnerID:    asset.OwnerID,
		StorageKey: asset.StorageKey,
		Category:   asset.Category,
		MimeType:   asset.MimeType,
		SizeBytes:  asset.SizeBytes,
		StoredAt:   time.Now(),
	}
	if err := s.publisher.PublishAssetStored(ctx, event); err != nil {
		s.logger.Warn("failed to publish asset stored event",
			"asset_id", asset.ID.String(), "error", err)
	}
}
