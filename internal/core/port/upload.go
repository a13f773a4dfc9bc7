package port

import (
	"context"
	"media-vault/internal/core/domain"

	"github.com/google/uuid"
)

// IssueGrantInput describes a client's single-shot upload intent.
type IssueGrantInput struct {
	Category  domain.Category
	Filename  string
	MimeType  string
	SizeBytes int64
	ContextID *uuid.UUID
}

// InitSessionInput describes a client's multipart upload intent.
// ChunkSizeBytes of zero means the server default.
type InitSessionInput struct {
	Category       domain.Category
	Filename       string
	MimeType       string
	TotalSizeBytes int64
	ChunkSizeBytes int64
	ContextID      *uuid.UUID
}

// UploadService is an interface to define the upload orchestration service
type UploadService interface {
	IssueGrant(ctx context.Context, principal domain.Principal, in IssueGrantInput) (*domain.GrantIssue, error)
	CompleteGrant(ctx context.Context, principal domain.Principal, token string) (*domain.StoredAsset, error)
	InitSession(ctx context.Context, principal domain.Principal, in InitSessionInput) (*domain.SessionInit, error)
	ResumeSession(ctx context.Context, principal domain.Principal, sessionID uuid.UUID) (*domain.SessionResume, error)
	ReportPart(ctx context.Context, principal domain.Principal, sessionID uuid.UUID, partNumber int, etag string) error
	CompleteSession(ctx context.Context, principal domain.Principal, sessionID uuid.UUID) (*domain.StoredAsset, error)
	AbortSession(ctx context.Context, principal domain.Principal, sessionID uuid.UUID) error
	GetAssetDownload(ctx context.Context, principal domain.Principal, assetID uuid.UUID) (*domain.StoredAsset, string, error)
}
