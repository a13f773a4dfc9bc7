package upload

import (
	"context"
	"errors"
	"fmt"
	"time"

	"media-vault/internal/core/domain"
	"media-vault/internal/core/port"
	"media-vault/internal/core/service/policy"
	"media-vault/internal/core/service/storagekey"

	"github.com/google/uuid"
)

// CompleteGrant consumes a single-shot grant: it confirms the object actually
// landed in storage with the expected size and type via a metadata-only
// request, mints the StoredAsset, and flips the grant pending -> used
// atomically. A grant that was already consumed returns the asset it minted.
func (s *uploadService) CompleteGrant(ctx context.Context, principal domain.Principal, token string) (*domain.StoredAsset, error) {

	grant, err := s.uow.GrantRepo().FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if grant.OwnerID != principal.ID {
		return nil, fmt.Errorf("%w: grant belongs to another owner", domain.ErrForbidden)
	}

	if grant.Status == domain.GrantStatusUsed {
		return s.uow.AssetRepo().FindByStorageKey(ctx, grant.StorageKey)
	}
	if grant.Status == domain.GrantStatusExpired || time.Now().After(grant.ExpiresAt) {
		return nil, fmt.Errorf("%w: grant expired at %s", domain.ErrExpired, grant.ExpiresAt.Format(time.RFC3339))
	}

	info, err := s.storage.StatObject(ctx, grant.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("%w: object not found, upload may have failed: %w", domain.ErrVerificationFailed, err)
	}
	if info.SizeBytes > grant.MaxSizeBytes {
		return nil, fmt.Errorf("%w: object is %d bytes, grant allows at most %d",
			domain.ErrVerificationFailed, info.SizeBytes, grant.MaxSizeBytes)
	}
	if !policy.MimeAllowed(info.ContentType, grant.AllowedMimeTypes) {
		return nil, fmt.Errorf("%w: stored content type %q not permitted by grant",
			domain.ErrVerificationFailed, info.ContentType)
	}

	parsed, err := storagekey.Parse(grant.StorageKey)
	if err != nil {
		return nil, err
	}

	asset := domain.StoredAsset{
		ID:         uuid.New(),
		StorageKey: grant.StorageKey,
		OwnerID:    grant.OwnerID,
		ContextID:  grant.ContextID,
		MimeType:   info.ContentType,
		SizeBytes:  info.SizeBytes,
		Checksum:   info.ETag,
		Visibility: parsed.Scope,
		Category:   parsed.Category,
	}

	txErr := s.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		// MarkUsed is guarded on status=pending; losing the race surfaces as
		// ErrGrantNotFound and rolls the asset insert back.
		if usedErr := uow.GrantRepo().MarkUsed(ctx, grant.ID, time.Now()); usedErr != nil {
			return usedErr
		}
		return uow.AssetRepo().Create(ctx, asset)
	})
	if txErr != nil {
		if errors.Is(txErr, domain.ErrGrantNotFound) || errors.Is(txErr, domain.ErrAlreadyExists) {
			return s.uow.AssetRepo().FindByStorageKey(ctx, grant.StorageKey)
		}
		return nil, txErr
	}

	s.publishStored(ctx, &asset)
	return &asset, nil
}
