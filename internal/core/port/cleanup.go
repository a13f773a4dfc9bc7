package port

import (
	"context"
	"time"
)

// CleanupService is service that releases expired grants and sessions
type CleanupService interface {
	CleanupExpiredSessions(ctx context.Context, now time.Time) error
	CleanupExpiredGrants(ctx context.Context, now time.Time) error
}
