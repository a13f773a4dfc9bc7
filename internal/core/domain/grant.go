package domain

import (
	"time"

	"github.com/google/uuid"
)

// GrantStatus represents the status of an upload grant
type GrantStatus string

const (
	GrantStatusPending GrantStatus = "pending"
	GrantStatusUsed    GrantStatus = "used"
	GrantStatusExpired GrantStatus = "expired"
)

// UploadGrant is the tracked authorization for one single-shot presigned upload.
// It transitions pending -> used exactly once.
type UploadGrant struct {
	ID               uuid.UUID
	Token            string
	OwnerID          uuid.UUID
	ContextID        *uuid.UUID
	StorageKey       string
	MaxSizeBytes     int64
	AllowedMimeTypes []string
	Status           GrantStatus
	ExpiresAt        time.Time
	UsedAt           *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
