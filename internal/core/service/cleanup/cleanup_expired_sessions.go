package cleanup

import (
	"context"
	"time"

	"media-vault/internal/core/domain"
)

// CleanupExpiredSessions aborts the backend multipart session of every
// expired in-progress upload so orphaned parts stop accumulating storage
// cost. Correctness does not depend on this sweep: expiry is enforced lazily
// at read time on every operation.
func (c *cleanupService) CleanupExpiredSessions(ctx context.Context, now time.Time) error {

	sessions, err := c.uow.SessionRepo().FindAllExpired(ctx, now)
	if err != nil {
		return err
	}

	for _, session := range sessions {
		if abortErr := c.storage.AbortMultipartUpload(ctx, session.StorageKey, session.RemoteUploadID); abortErr != nil {
			c.logger.Error("failed to abort expired backend session",
				"session_id", session.ID.String(), "error", abortErr)
			continue
		}

		if updateErr := c.uow.SessionRepo().UpdateStatus(ctx, session.ID, domain.UploadSessionStatusExpired); updateErr != nil {
			c.logger.Error("failed to mark session expired",
				"session_id", session.ID.String(), "error", updateErr)
		}
	}

	c.logger.Info("expired session sweep completed", "count", len(sessions))
	return nil
}
