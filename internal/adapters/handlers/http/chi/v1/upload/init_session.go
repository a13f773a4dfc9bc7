package upload

import (
	"encoding/json"
	"net/http"
	"time"

	"media-vault/internal/core/domain"
	"media-vault/internal/core/port"

	"github.com/google/uuid"
)

// V1InitSessionRequest is the request to open a multipart upload session.
// ChunkSizeBytes of zero lets the server pick.
type V1InitSessionRequest struct {
	Category       string     `json:"category"`
	Filename       string     `json:"filename"`
	MimeType       string     `json:"mime_type"`
	TotalSizeBytes int64      `json:"total_size_bytes"`
	ChunkSizeBytes int64      `json:"chunk_size_bytes,omitempty"`
	ContextID      *uuid.UUID `json:"context_id,omitempty"`
}

// V1PresignedPart is one signed part URL in a response
type V1PresignedPart struct {
	PartNumber int               `json:"part_number"`
	URL        string            `json:"url"`
	Headers    map[string]string `json:"headers,omitempty"`
	ExpiresAt  time.Time         `json:"expires_at"`
	SizeBytes  int64             `json:"size_bytes"`
}

// V1InitSessionResponse is the response to open a multipart upload session
type V1InitSessionResponse struct {
	SessionID      uuid.UUID         `json:"session_id"`
	StorageKey     string            `json:"storage_key"`
	ChunkSizeBytes int64             `json:"chunk_size_bytes"`
	TotalChunks    int               `json:"total_chunks"`
	ExpiresAt      time.Time         `json:"expires_at"`
	Parts          []V1PresignedPart `json:"parts"`
}

func (h *HandlerV1) InitSessionV1(w http.ResponseWriter, r *http.Request) {

	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req V1InitSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("error decoding init session request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Category == "" || req.Filename == "" || req.MimeType == "" || req.TotalSizeBytes <= 0 {
		http.Error(w, "missing param", http.StatusBadRequest)
		return
	}

	init, err := h.uploadService.InitSession(r.Context(), principal, port.InitSessionInput{
		Category:       domain.Category(req.Category),
		Filename:       req.Filename,
		MimeType:       req.MimeType,
		TotalSizeBytes: req.TotalSizeBytes,
		ChunkSizeBytes: req.ChunkSizeBytes,
		ContextID:      req.ContextID,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, V1InitSessionResponse{
		SessionID:      init.SessionID,
		StorageKey:     init.StorageKey,
		ChunkSizeBytes: init.ChunkSizeBytes,
		TotalChunks:    init.TotalChunks,
		ExpiresAt:      init.ExpiresAt,
		Parts:          toV1Parts(init.Parts),
	}, h.logger)
}

func toV1Parts(parts []domain.PresignedPart) []V1PresignedPart {
	out := make([]V1PresignedPart, 0, len(parts))
	for _, p := range parts {
		out = append(out, V1PresignedPart{
			PartNumber: p.PartNumber,
			URL:        p.URL,
			Headers:    p.Headers,
			ExpiresAt:  p.ExpiresAt,
			SizeBytes:  p.SizeBytes,
		})
	}
	return out
}
