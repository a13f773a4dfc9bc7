package port

import (
	"context"
	"media-vault/internal/core/domain"
	"time"

	"github.com/google/uuid"
)

// UploadSessionRepository is an interface to interact with upload session repositories
type UploadSessionRepository interface {
	Create(ctx context.Context, session domain.UploadSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error)
	// RecordPart merges one acknowledged part into the session, keyed by part
	// number. Re-reporting the same part number is idempotent; concurrent
	// reports of different parts never erase each other.
	RecordPart(ctx context.Context, sessionID uuid.UUID, part domain.UploadPart) error
	// ListParts returns recorded parts in ascending part-number order.
	ListParts(ctx context.Context, sessionID uuid.UUID) ([]domain.UploadPart, error)
	CountParts(ctx context.Context, sessionID uuid.UUID) (int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.UploadSessionStatus) error
	FindAllExpired(ctx context.Context, now time.Time) ([]domain.UploadSession, error)
}
