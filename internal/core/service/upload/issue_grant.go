package upload

import (
	"context"
	"fmt"
	"time"

	"media-vault/internal/core/domain"
	"media-vault/internal/core/port"
	"media-vault/internal/core/service/storagekey"

	"github.com/google/uuid"
)

// IssueGrant authorizes one single-shot presigned upload. Issuance is atomic:
// the tracking row and the signed URL are produced inside one transaction, so
// a signing failure rolls the row back and a persistence failure never leaves
// an authorized-but-untracked write.
func (s *uploadService) IssueGrant(ctx context.Context, principal domain.Principal, in port.IssueGrantInput) (*domain.GrantIssue, error) {

	if err := s.gate.Authorize(principal.Role, in.Category, in.MimeType, in.SizeBytes); err != nil {
		return nil, err
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}

	storageKey := storagekey.Derive(in.Category, principal.ID, in.Filename, time.Now())
	expiresAt := time.Now().Add(s.uploadCfg.GrantTTL)

	grant := domain.UploadGrant{
		ID:               uuid.New(),
		Token:            token,
		OwnerID:          principal.ID,
		ContextID:        in.ContextID,
		StorageKey:       storageKey,
		MaxSizeBytes:     in.SizeBytes,
		AllowedMimeTypes: s.gate.AllowedMimeTypes(in.Category),
		Status:           domain.GrantStatusPending,
		ExpiresAt:        expiresAt,
	}

	var uploadURL string
	var headers map[string]string

	txErr := s.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		if createErr := uow.GrantRepo().Create(ctx, grant); createErr != nil {
			return createErr
		}

		var signErr error
		uploadURL, headers, _, signErr = s.storage.PresignPut(ctx, storageKey, in.MimeType, in.SizeBytes)
		return signErr
	})
	if txErr != nil {
		return nil, fmt.Errorf("could not issue upload grant: %w", txErr)
	}

	return &domain.GrantIssue{
		Token:      token,
		StorageKey: storageKey,
		UploadURL:  uploadURL,
		Headers:    headers,
		ExpiresAt:  expiresAt,
	}, nil
}
