package upload

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type V1AssetDownloadResponse struct {
	V1AssetResponse
	DownloadURL string `json:"download_url"`
}

func (h *HandlerV1) GetAssetV1(w http.ResponseWriter, r *http.Request) {

	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	assetID, err := uuid.Parse(chi.URLParam(r, "assetID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	asset, url, err := h.uploadService.GetAssetDownload(r.Context(), principal, assetID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, V1AssetDownloadResponse{
		V1AssetResponse: toV1Asset(asset),
		DownloadURL:     url,
	}, h.logger)
}
