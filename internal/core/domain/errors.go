package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAlreadyExists is an error thrown when entity already exists
var ErrAlreadyExists = errors.New("already exists")

// ErrPolicyDenied is an error thrown when the access policy rejects an upload request
var ErrPolicyDenied = errors.New("policy denied")

// ErrGrantNotFound is an error thrown when an upload grant is not found
var ErrGrantNotFound = errors.New("grant not found")

// ErrSessionNotFound is an error thrown when an upload session is not found
var ErrSessionNotFound = errors.New("session not found")

// ErrAssetNotFound is an error thrown when a stored asset is not found
var ErrAssetNotFound = errors.New("asset not found")

// ErrForbidden is an error thrown when the requester does not own the record
var ErrForbidden = errors.New("forbidden")

// ErrExpired is an error thrown when a grant or session is past its TTL
var ErrExpired = errors.New("expired")

// ErrIncomplete is an error thrown when completion is attempted before all parts are reported
var ErrIncomplete = errors.New("upload incomplete")

// ErrBackendRejected is an error thrown when the storage backend refuses completion
var ErrBackendRejected = errors.New("storage backend rejected completion")

// ErrVerificationFailed is an error thrown when the uploaded object is absent or does not match
var ErrVerificationFailed = errors.New("upload verification failed")

// ErrInvalidPartNumber is an error thrown when a part number is outside the chunk plan
var ErrInvalidPartNumber = errors.New("invalid part number")

// ErrInvalidChunkPlan is an error thrown when a session's chunk geometry is inconsistent
var ErrInvalidChunkPlan = errors.New("invalid chunk plan")

// IncompleteError reports which part numbers are still missing so the client
// can resume instead of restarting.
type IncompleteError struct {
	Missing []int
}

func (e *IncompleteError) Error() string {
	nums := make([]string, 0, len(e.Missing))
	for _, n := range e.Missing {
		nums = append(nums, fmt.Sprintf("%d", n))
	}
	return fmt.Sprintf("upload incomplete: missing parts [%s]", strings.Join(nums, ", "))
}

func (e *IncompleteError) Unwrap() error { return ErrIncomplete }
