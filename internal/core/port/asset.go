package port

import (
	"context"
	"media-vault/internal/core/domain"

	"github.com/google/uuid"
)

// AssetRepository is an interface to interact with stored asset repositories
type AssetRepository interface {
	Create(ctx context.Context, asset domain.StoredAsset) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.StoredAsset, error)
	FindByStorageKey(ctx context.Context, storageKey string) (*domain.StoredAsset, error)
}
