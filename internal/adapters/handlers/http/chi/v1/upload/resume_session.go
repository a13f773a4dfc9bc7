package upload

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// V1UploadedPart summarizes one recorded part for progress display
type V1UploadedPart struct {
	PartNumber int    `json:"part_number"`
	ETag       string `json:"etag"`
}

// V1ResumeSessionResponse reports what the client still owes plus progress
type V1ResumeSessionResponse struct {
	SessionID      uuid.UUID         `json:"session_id"`
	ChunkSizeBytes int64             `json:"chunk_size_bytes"`
	TotalChunks    int               `json:"total_chunks"`
	RemainingParts []V1PresignedPart `json:"remaining_parts"`
	UploadedParts  []V1UploadedPart  `json:"uploaded_parts"`
	BytesUploaded  int64             `json:"bytes_uploaded"`
	ChunksUploaded int               `json:"chunks_uploaded"`
}

func (h *HandlerV1) ResumeSessionV1(w http.ResponseWriter, r *http.Request) {

	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resume, err := h.uploadService.ResumeSession(r.Context(), principal, sessionID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	uploaded := make([]V1UploadedPart, 0, len(resume.UploadedParts))
	for _, p := range resume.UploadedParts {
		uploaded = append(uploaded, V1UploadedPart{PartNumber: p.PartNumber, ETag: p.ETag})
	}

	writeJSON(w, http.StatusOK, V1ResumeSessionResponse{
		SessionID:      resume.SessionID,
		ChunkSizeBytes: resume.ChunkSizeBytes,
		TotalChunks:    resume.TotalChunks,
		RemainingParts: toV1Parts(resume.Parts),
		UploadedParts:  uploaded,
		BytesUploaded:  resume.BytesUploaded,
		ChunksUploaded: resume.ChunksUploaded,
	}, h.logger)
}
