package domain

import (
	"time"

	"github.com/google/uuid"
)

// GrantIssue is the result of issuing a single-shot upload grant.
type GrantIssue struct {
	Token      string
	StorageKey string
	UploadURL  string
	Headers    map[string]string
	ExpiresAt  time.Time
}

// SessionInit is the result of opening a multipart upload session. Part URLs
// are minted eagerly for every part so the client can retry any part without
// a round trip.
type SessionInit struct {
	SessionID      uuid.UUID
	StorageKey     string
	ChunkSizeBytes int64
	TotalChunks    int
	ExpiresAt      time.Time
	Parts          []PresignedPart
}

// SessionResume is the result of resolving what a client still owes on an
// in-flight session. Parts contains fresh URLs for missing parts only.
type SessionResume struct {
	SessionID      uuid.UUID
	ChunkSizeBytes int64
	TotalChunks    int
	Parts          []PresignedPart
	UploadedParts  []UploadPart
	BytesUploaded  int64
	ChunksUploaded int
}

// AssetStoredEvent is published after a verified completion so downstream
// processing can run without the upload protocol depending on it.
type AssetStoredEvent struct {
	AssetID    uuid.UUID `json:"asset_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	StorageKey string    `json:"storage_key"`
	Category   Category  `json:"category"`
	MimeType   string    `json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	StoredAt   time.Time `json:"stored_at"`
}
