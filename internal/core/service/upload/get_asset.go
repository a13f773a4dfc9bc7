package upload

import (
	"context"
	"fmt"

	"media-vault/internal/core/domain"

	"github.com/google/uuid"
)

// GetAssetDownload returns a verified asset and a presigned download URL for
// it. Restricted assets are readable by their owner and admins only.
func (s *uploadService) GetAssetDownload(ctx context.Context, principal domain.Principal, assetID uuid.UUID) (*domain.StoredAsset, string, error) {

	asset, err := s.uow.AssetRepo().FindByID(ctx, assetID)
	if err != nil {
		return nil, "", err
	}

	if asset.Visibility == domain.VisibilityRestricted &&
		asset.OwnerID != principal.ID && principal.Role != domain.RoleAdmin {
		return nil, "", fmt.Errorf("%w: asset is restricted", domain.ErrForbidden)
	}

	url, _, err := s.storage.PresignDownload(ctx, asset.StorageKey)
	if err != nil {
		return nil, "", fmt.Errorf("could not presign download: %w", err)
	}

	return asset, url, nil
}
