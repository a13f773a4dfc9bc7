package upload

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// V1ReportPartRequest acknowledges one uploaded part
type V1ReportPartRequest struct {
	ETag string `json:"etag"`
}

func (h *HandlerV1) ReportPartV1(w http.ResponseWriter, r *http.Request) {

	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	partNumber, err := strconv.Atoi(chi.URLParam(r, "partNumber"))
	if err != nil {
		http.Error(w, "part number must be an integer", http.StatusBadRequest)
		return
	}

	var req V1ReportPartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("error decoding report part request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.ETag == "" {
		http.Error(w, "missing etag", http.StatusBadRequest)
		return
	}

	if err := h.uploadService.ReportPart(r.Context(), principal, sessionID, partNumber, req.ETag); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
