package upload

import (
	"context"
	"time"

	"media-vault/internal/core/domain"

	"github.com/google/uuid"
)

// ResumeSession reports what the client still owes on an in-flight session
// and mints fresh signed URLs for exactly those parts. Parts already recorded
// never get a new URL; the missing-set computation is the single source of
// truth for remaining work.
func (s *uploadService) ResumeSession(ctx context.Context, principal domain.Principal, sessionID uuid.UUID) (*domain.SessionResume, error) {

	session, err := s.findOwnedSession(ctx, principal, sessionID)
	if err != nil {
		return nil, err
	}
	if err := requireActive(session, time.Now()); err != nil {
		return nil, err
	}

	uploaded, err := s.uow.SessionRepo().ListParts(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	missing := session.MissingParts(uploaded)
	parts, err := s.presignParts(ctx, session, missing)
	if err != nil {
		return nil, err
	}

	var bytesUploaded int64
	for _, p := range uploaded {
		bytesUploaded += session.PartSize(p.PartNumber)
	}

	return &domain.SessionResume{
		SessionID:      session.ID,
		ChunkSizeBytes: session.ChunkSizeBytes,
		TotalChunks:    session.TotalChunks,
		Parts:          parts,
		UploadedParts:  uploaded,
		BytesUploaded:  bytesUploaded,
		ChunksUploaded: len(uploaded),
	}, nil
}
