package domain

import (
	"time"

	"github.com/google/uuid"
)

// StoredAsset is the permanent metadata record minted by the completion
// verifier after independent confirmation against storage. It is never built
// from client-asserted fields.
type StoredAsset struct {
	ID         uuid.UUID
	StorageKey string
	OwnerID    uuid.UUID
	ContextID  *uuid.UUID
	MimeType   string
	SizeBytes  int64
	Checksum   string
	Visibility Visibility
	Category   Category
	CreatedAt  time.Time
}

// ObjectInfo is the backend's view of a stored object, obtained with a
// metadata-only (HEAD-equivalent) request.
type ObjectInfo struct {
	Key         string
	SizeBytes   int64
	ETag        string
	ContentType string
}
