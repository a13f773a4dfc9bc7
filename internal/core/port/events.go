package port

import (
	"context"
	"media-vault/internal/core/domain"
)

// EventPublisher is an interface to hand completed-upload notifications to a
// message broker. Publishing is fire-and-forget with respect to the upload
// protocol: a publish failure never fails a verified completion.
type EventPublisher interface {
	PublishAssetStored(ctx context.Context, event domain.AssetStoredEvent) error
	Close() error
}
