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

// InitSession opens a multipart upload: it clamps the chunk plan, creates the
// backend session, persists the durable session record and eagerly presigns a
// URL for every part so an unreliable client can retry any part without a
// round trip. The session TTL deliberately outlives the per-part URL TTLs;
// ResumeSession mints fresh part URLs for whatever remains.
func (s *uploadService) InitSession(ctx context.Context, principal domain.Principal, in port.InitSessionInput) (*domain.SessionInit, error) {

	if err := s.gate.Authorize(principal.Role, in.Category, in.MimeType, in.TotalSizeBytes); err != nil {
		return nil, err
	}

	chunkSize := s.planChunkSize(in.ChunkSizeBytes, in.TotalSizeBytes)
	totalChunks := int((in.TotalSizeBytes + chunkSize - 1) / chunkSize)
	if totalChunks < 1 || totalChunks > maxPartsPerUpload {
		return nil, fmt.Errorf("%w: %d bytes cannot be split into at most %d parts of %d bytes",
			domain.ErrInvalidChunkPlan, in.TotalSizeBytes, maxPartsPerUpload, chunkSize)
	}

	storageKey := storagekey.Derive(in.Category, principal.ID, in.Filename, time.Now())

	uploadID, err := s.storage.InitMultipartUpload(ctx, storageKey, in.MimeType)
	if err != nil {
		return nil, fmt.Errorf("could not open multipart upload: %w", err)
	}

	session := domain.UploadSession{
		ID:             uuid.New(),
		RemoteUploadID: uploadID,
		OwnerID:        principal.ID,
		ContextID:      in.ContextID,
		StorageKey:     storageKey,
		MimeType:       in.MimeType,
		TotalSizeBytes: in.TotalSizeBytes,
		ChunkSizeBytes: chunkSize,
		TotalChunks:    totalChunks,
		Status:         domain.UploadSessionStatusInProgress,
		ExpiresAt:      time.Now().Add(s.uploadCfg.SessionTTL),
	}

	txErr := s.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		return uow.SessionRepo().Create(ctx, session)
	})
	if txErr != nil {
		// Release the orphaned backend session; the sweep would catch it
		// eventually but there is no reason to wait.
		if abortErr := s.storage.AbortMultipartUpload(ctx, storageKey, uploadID); abortErr != nil {
			s.logger.Warn("failed to abort backend session after persistence failure",
				"storage_key", storageKey, "error", abortErr)
		}
		return nil, fmt.Errorf("could not persist upload session: %w", txErr)
	}

	parts, err := s.presignParts(ctx, &session, allPartNumbers(totalChunks))
	if err != nil {
		return nil, err
	}

	return &domain.SessionInit{
		SessionID:      session.ID,
		StorageKey:     storageKey,
		ChunkSizeBytes: chunkSize,
		TotalChunks:    totalChunks,
		ExpiresAt:      session.ExpiresAt,
		Parts:          parts,
	}, nil
}

// planChunkSize clamps the requested chunk size into the allowed window and
// grows it when the declared total would otherwise exceed the backend's part
// count limit.
func (s *uploadService) planChunkSize(requested, totalSize int64) int64 {
	chunk := requested
	if chunk <= 0 {
		chunk = s.uploadCfg.DefaultChunkSize
	}
	if chunk < s.uploadCfg.MinChunkSize {
		chunk = s.uploadCfg.MinChunkSize
	}
	if chunk > s.uploadCfg.MaxChunkSize {
		chunk = s.uploadCfg.MaxChunkSize
	}
	if minForCap := (totalSize + maxPartsPerUpload - 1) / maxPartsPerUpload; chunk < minForCap {
		chunk = minForCap
	}
	return chunk
}

func (s *uploadService) presignParts(ctx context.Context, session *domain.UploadSession, partNumbers []int) ([]domain.PresignedPart, error) {
	parts := make([]domain.PresignedPart, 0, len(partNumbers))
	for _, n := range partNumbers {
		url, headers, expiresAt, err := s.storage.PresignPart(ctx, session.StorageKey, session.RemoteUploadID, n)
		if err != nil {
			return nil, fmt.Errorf("could not presign part %d: %w", n, err)
		}
		part := domain.PresignedPart{
			PartNumber: n,
			URL:        url,
			Headers:    headers,
			SizeBytes:  session.PartSize(n),
		}
		if expiresAt != nil {
			part.ExpiresAt = *expiresAt
		}
		parts = append(parts, part)
	}
	return parts, nil
}

func allPartNumbers(totalChunks int) []int {
	nums := make([]int, totalChunks)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}
