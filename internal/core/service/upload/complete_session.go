package upload

import (
	"context"
	"errors"
	"fmt"
	"time"

	"media-vault/internal/core/domain"
	"media-vault/internal/core/port"
	"media-vault/internal/core/service/storagekey"

	"github.com/google/uuid"
)

// CompleteSession closes a multipart upload. It requires every part of the
// chunk plan to be recorded, presents the parts to the backend in strictly
// ascending part-number order, independently verifies the assembled object,
// and only then mints the StoredAsset. Calling it again on a completed
// session returns the same asset.
func (s *uploadService) CompleteSession(ctx context.Context, principal domain.Principal, sessionID uuid.UUID) (*domain.StoredAsset, error) {

	session, err := s.findOwnedSession(ctx, principal, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status == domain.UploadSessionStatusCompleted {
		return s.uow.AssetRepo().FindByStorageKey(ctx, session.StorageKey)
	}
	if err := requireActive(session, time.Now()); err != nil {
		return nil, err
	}

	parts, err := s.uow.SessionRepo().ListParts(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(parts) < session.TotalChunks {
		return nil, &domain.IncompleteError{Missing: session.MissingParts(parts)}
	}

	// The backend refuses completion on a bad checksum tag; the session stays
	// in_progress so the client can re-upload the suspect part and retry.
	checksum, err := s.storage.CompleteMultipartUpload(ctx, session.StorageKey, session.RemoteUploadID, parts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrBackendRejected, err)
	}

	asset, err := s.verifyAndStore(ctx, session, checksum)
	if err != nil {
		return nil, err
	}

	s.publishStored(ctx, asset)
	return asset, nil
}

func (s *uploadService) verifyAndStore(ctx context.Context, session *domain.UploadSession, checksum string) (*domain.StoredAsset, error) {

	info, err := s.storage.StatObject(ctx, session.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("%w: object missing after completion: %w", domain.ErrVerificationFailed, err)
	}
	if info.SizeBytes != session.TotalSizeBytes {
		return nil, fmt.Errorf("%w: object is %d bytes, session declared %d",
			domain.ErrVerificationFailed, info.SizeBytes, session.TotalSizeBytes)
	}

	// Category and visibility come from the server-derived key prefix, never
	// from client-supplied fields.
	parsed, err := storagekey.Parse(session.StorageKey)
	if err != nil {
		return nil, err
	}

	if checksum == "" {
		checksum = info.ETag
	}

	asset := domain.StoredAsset{
		ID:         uuid.New(),
		StorageKey: session.StorageKey,
		OwnerID:    session.OwnerID,
		ContextID:  session.ContextID,
		MimeType:   info.ContentType,
		SizeBytes:  info.SizeBytes,
		Checksum:   checksum,
		Visibility: parsed.Scope,
		Category:   parsed.Category,
	}

	txErr := s.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		if createErr := uow.AssetRepo().Create(ctx, asset); createErr != nil {
			return createErr
		}
		return uow.SessionRepo().UpdateStatus(ctx, session.ID, domain.UploadSessionStatusCompleted)
	})
	if txErr != nil {
		// A concurrent completion won the race; hand back its asset.
		if errors.Is(txErr, domain.ErrAlreadyExists) {
			return s.uow.AssetRepo().FindByStorageKey(ctx, session.StorageKey)
		}
		return nil, txErr
	}

	return &asset, nil
}
