package upload

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"media-vault/internal/adapters/handlers/http/chi/auth"
	"media-vault/internal/core/domain"
	"media-vault/internal/core/port"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for v1 upload routes
type HandlerV1 struct {
	uploadService port.UploadService
	logger        *slog.Logger
}

// NewUploadHandlerV1 creates HandlerV1
func NewUploadHandlerV1(service port.UploadService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		uploadService: service,
		logger:        logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/grants", h.IssueGrantV1)
	router.Post("/grants/{token}/complete", h.CompleteGrantV1)
	router.Post("/sessions", h.InitSessionV1)
	router.Get("/sessions/{sessionID}/resume", h.ResumeSessionV1)
	router.Put("/sessions/{sessionID}/parts/{partNumber}", h.ReportPartV1)
	router.Post("/sessions/{sessionID}/complete", h.CompleteSessionV1)
	router.Delete("/sessions/{sessionID}", h.AbortSessionV1)
	router.Get("/assets/{assetID}", h.GetAssetV1)

	return router
}

func (h *HandlerV1) principal(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return domain.Principal{}, false
	}
	return principal, true
}

// writeServiceError maps domain errors to HTTP statuses. The taxonomy gives
// the client enough to decide between resume, retry and restart.
func (h *HandlerV1) writeServiceError(w http.ResponseWriter, err error) {
	var incomplete *domain.IncompleteError

	switch {
	case errors.Is(err, domain.ErrPolicyDenied):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, domain.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, domain.ErrGrantNotFound),
		errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrAssetNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrExpired):
		http.Error(w, err.Error(), http.StatusGone)
	case errors.As(err, &incomplete):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"error":         "upload incomplete",
			"missing_parts": incomplete.Missing,
		})
	case errors.Is(err, domain.ErrVerificationFailed):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrBackendRejected):
		http.Error(w, err.Error(), http.StatusBadGateway)
	case errors.Is(err, domain.ErrInvalidPartNumber),
		errors.Is(err, domain.ErrInvalidChunkPlan):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrAlreadyExists):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.logger.Error("upload service error", "error", err)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("error encoding response", "error", err)
	}
}
