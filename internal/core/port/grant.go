package port

import (
	"context"
	"media-vault/internal/core/domain"
	"time"

	"github.com/google/uuid"
)

// GrantRepository is an interface to interact with upload grant repositories
type GrantRepository interface {
	Create(ctx context.Context, grant domain.UploadGrant) error
	FindByToken(ctx context.Context, token string) (*domain.UploadGrant, error)
	// MarkUsed flips a grant from pending to used. It reports
	// domain.ErrGrantNotFound when the grant is absent or no longer pending,
	// so a second consumption attempt cannot silently succeed.
	MarkUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.GrantStatus) error
	FindAllExpired(ctx context.Context, now time.Time) ([]domain.UploadGrant, error)
}
