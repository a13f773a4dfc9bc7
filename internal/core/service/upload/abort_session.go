package upload

import (
	"context"
	"fmt"

	"media-vault/internal/core/domain"

	"github.com/google/uuid"
)

// AbortSession releases the backend multipart session and marks the record
// aborted so partially uploaded parts stop accruing storage cost. Aborting an
// already-aborted or expired session is a no-op.
func (s *uploadService) AbortSession(ctx context.Context, principal domain.Principal, sessionID uuid.UUID) error {

	session, err := s.findOwnedSession(ctx, principal, sessionID)
	if err != nil {
		return err
	}

	switch session.Status {
	case domain.UploadSessionStatusAborted, domain.UploadSessionStatusExpired:
		return nil
	case domain.UploadSessionStatusCompleted:
		return fmt.Errorf("%w: session already completed", domain.ErrAlreadyExists)
	}

	if err := s.storage.AbortMultipartUpload(ctx, session.StorageKey, session.RemoteUploadID); err != nil {
		return fmt.Errorf("could not abort backend session: %w", err)
	}

	return s.uow.SessionRepo().UpdateStatus(ctx, session.ID, domain.UploadSessionStatusAborted)
}
