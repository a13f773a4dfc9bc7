package upload

import (
	"context"
	"fmt"
	"strings"
	"time"

	"media-vault/internal/core/domain"

	"github.com/google/uuid"
)

// ReportPart records one acknowledged part. The merge is keyed by part number
// in storage, so a retried chunk leaves exactly one entry and two parts
// completing at the same instant are both recorded.
func (s *uploadService) ReportPart(ctx context.Context, principal domain.Principal, sessionID uuid.UUID, partNumber int, etag string) error {

	session, err := s.findOwnedSession(ctx, principal, sessionID)
	if err != nil {
		return err
	}
	if err := requireActive(session, time.Now()); err != nil {
		return err
	}

	if partNumber < 1 || partNumber > session.TotalChunks {
		return fmt.Errorf("%w: part %d outside [1, %d]", domain.ErrInvalidPartNumber, partNumber, session.TotalChunks)
	}

	etag = strings.Trim(etag, "\"")
	if etag == "" {
		return fmt.Errorf("%w: empty etag for part %d", domain.ErrInvalidPartNumber, partNumber)
	}

	return s.uow.SessionRepo().RecordPart(ctx, sessionID, domain.UploadPart{
		PartNumber: partNumber,
		ETag:       etag,
	})
}
