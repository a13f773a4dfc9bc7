package domain

import (
	"time"

	"github.com/google/uuid"
)

// UploadSessionStatus represents the status of an upload session
type UploadSessionStatus string

const (
	UploadSessionStatusInProgress UploadSessionStatus = "in_progress"
	UploadSessionStatusCompleted  UploadSessionStatus = "completed"
	UploadSessionStatusExpired    UploadSessionStatus = "expired"
	UploadSessionStatusAborted    UploadSessionStatus = "aborted"
)

// UploadSession is the durable record of an in-flight multipart upload.
type UploadSession struct {
	ID              uuid.UUID
	RemoteUploadID  string
	OwnerID         uuid.UUID
	ContextID       *uuid.UUID
	StorageKey      string
	MimeType        string
	TotalSizeBytes  int64
	ChunkSizeBytes  int64
	TotalChunks     int
	Status          UploadSessionStatus
	ExpiresAt       time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// UploadPart is one acknowledged chunk of a multipart upload, keyed by a
// 1-based part number.
type UploadPart struct {
	PartNumber int
	ETag       string
	ReportedAt time.Time
}

// PresignedPart is a time-boxed signed URL authorizing the upload of one part.
type PresignedPart struct {
	PartNumber   int
	URL          string
	Headers      map[string]string
	ExpiresAt    time.Time
	SizeBytes    int64
}

// PartSize returns the byte length of a given part under the session's chunk
// plan. Every part is ChunkSizeBytes except the last, which carries the
// remainder.
func (s *UploadSession) PartSize(partNumber int) int64 {
	if partNumber < 1 || partNumber > s.TotalChunks {
		return 0
	}
	if partNumber < s.TotalChunks {
		return s.ChunkSizeBytes
	}
	rest := s.TotalSizeBytes - int64(s.TotalChunks-1)*s.ChunkSizeBytes
	return rest
}

// MissingParts returns the part numbers not yet present in uploaded, in
// ascending order.
func (s *UploadSession) MissingParts(uploaded []UploadPart) []int {
	seen := make(map[int]struct{}, len(uploaded))
	for _, p := range uploaded {
		seen[p.PartNumber] = struct{}{}
	}
	missing := make([]int, 0, s.TotalChunks-len(seen))
	for n := 1; n <= s.TotalChunks; n++ {
		if _, ok := seen[n]; !ok {
			missing = append(missing, n)
		}
	}
	return missing
}
