package cleanup

import (
	"context"
	"time"

	"media-vault/internal/core/domain"
)

// CleanupExpiredGrants marks overdue pending grants expired and deletes any
// object that landed under a grant that was never completed: without a
// completion call the bytes were never verified and no StoredAsset exists.
func (c *cleanupService) CleanupExpiredGrants(ctx context.Context, now time.Time) error {

	grants, err := c.uow.GrantRepo().FindAllExpired(ctx, now)
	if err != nil {
		return err
	}

	for _, grant := range grants {
		if updateErr := c.uow.GrantRepo().UpdateStatus(ctx, grant.ID, domain.GrantStatusExpired); updateErr != nil {
			c.logger.Error("failed to mark grant expired",
				"grant_id", grant.ID.String(), "error", updateErr)
			continue
		}

		if _, statErr := c.storage.StatObject(ctx, grant.StorageKey); statErr != nil {
			// Nothing was uploaded; the grant row is the only residue.
			continue
		}
		if deleteErr := c.storage.DeleteObject(ctx, grant.StorageKey); deleteErr != nil {
			c.logger.Error("failed to delete unverified object",
				"storage_key", grant.StorageKey, "error", deleteErr)
		}
	}

	c.logger.Info("expired grant sweep completed", "count", len(grants))
	return nil
}
