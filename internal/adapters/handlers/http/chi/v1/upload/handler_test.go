package upload_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"media-vault/internal/adapters/handlers/http/chi"
	uploadhandler "media-vault/internal/adapters/handlers/http/chi/v1/upload"
	"media-vault/internal/core/domain"
	"media-vault/internal/core/service/upload"

	"github.com/google/uuid"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestRouter(service *upload.MockUploadService) http.Handler {
	handler := uploadhandler.NewUploadHandlerV1(service, discardLogger)
	return chi.NewRouter(discardLogger, handler, "")
}

func authedRequest(method, target string, body io.Reader, principal domain.Principal) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("X-User-ID", principal.ID.String())
	req.Header.Set("X-User-Role", string(principal.Role))
	return req
}

func member() domain.Principal {
	return domain.Principal{ID: uuid.New(), Role: domain.RoleMember}
}
