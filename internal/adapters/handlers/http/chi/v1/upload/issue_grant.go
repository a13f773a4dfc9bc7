package upload

import (
	"encoding/json"
	"net/http"
	"time"

	"media-vault/internal/core/domain"
	"media-vault/internal/core/port"

	"github.com/google/uuid"
)

// V1IssueGrantRequest is the request to issue a single-shot upload grant
type V1IssueGrantRequest struct {
	Category  string     `json:"category"`
	Filename  string     `json:"filename"`
	MimeType  string     `json:"mime_type"`
	SizeBytes int64      `json:"size_bytes"`
	ContextID *uuid.UUID `json:"context_id,omitempty"`
}

// V1IssueGrantResponse is the response to issue a single-shot upload grant
type V1IssueGrantResponse struct {
	Token      string            `json:"token"`
	StorageKey string            `json:"storage_key"`
	UploadURL  string            `json:"upload_url"`
	Headers    map[string]string `json:"headers"`
	ExpiresAt  time.Time         `json:"expires_at"`
}

func (h *HandlerV1) IssueGrantV1(w http.ResponseWriter, r *http.Request) {

	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req V1IssueGrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("error decoding issue grant request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Category == "" || req.Filename == "" || req.MimeType == "" || req.SizeBytes <= 0 {
		http.Error(w, "missing param", http.StatusBadRequest)
		return
	}

	issue, err := h.uploadService.IssueGrant(r.Context(), principal, port.IssueGrantInput{
		Category:  domain.Category(req.Category),
		Filename:  req.Filename,
		MimeType:  req.MimeType,
		SizeBytes: req.SizeBytes,
		ContextID: req.ContextID,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, V1IssueGrantResponse{
		Token:      issue.Token,
		StorageKey: issue.StorageKey,
		UploadURL:  issue.UploadURL,
		Headers:    issue.Headers,
		ExpiresAt:  issue.ExpiresAt,
	}, h.logger)
}
