package upload

import (
	"net/http"
	"time"

	"media-vault/internal/core/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// V1AssetResponse is the permanent metadata record returned on completion
type V1AssetResponse struct {
	AssetID    uuid.UUID  `json:"asset_id"`
	StorageKey string     `json:"storage_key"`
	OwnerID    uuid.UUID  `json:"owner_id"`
	ContextID  *uuid.UUID `json:"context_id,omitempty"`
	MimeType   string     `json:"mime_type"`
	SizeBytes  int64      `json:"size_bytes"`
	Checksum   string     `json:"checksum"`
	Visibility string     `json:"visibility"`
	Category   string     `json:"category"`
	CreatedAt  time.Time  `json:"created_at"`
}

func toV1Asset(asset *domain.StoredAsset) V1AssetResponse {
	return V1AssetResponse{
		AssetID:    asset.ID,
		StorageKey: asset.StorageKey,
		OwnerID:    asset.OwnerID,
		ContextID:  asset.ContextID,
		MimeType:   asset.MimeType,
		SizeBytes:  asset.SizeBytes,
		Checksum:   asset.Checksum,
		Visibility: string(asset.Visibility),
		Category:   string(asset.Category),
		CreatedAt:  asset.CreatedAt,
	}
}

func (h *HandlerV1) CompleteGrantV1(w http.ResponseWriter, r *http.Request) {

	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	token := chi.URLParam(r, "token")
	if token == "" {
		http.Error(w, "token is required", http.StatusBadRequest)
		return
	}

	asset, err := h.uploadService.CompleteGrant(r.Context(), principal, token)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toV1Asset(asset), h.logger)
}

func (h *HandlerV1) CompleteSessionV1(w http.ResponseWriter, r *http.Request) {

	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	asset, err := h.uploadService.CompleteSession(r.Context(), principal, sessionID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toV1Asset(asset), h.logger)
}

func (h *HandlerV1) AbortSessionV1(w http.ResponseWriter, r *http.Request) {

	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.uploadService.AbortSession(r.Context(), principal, sessionID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
