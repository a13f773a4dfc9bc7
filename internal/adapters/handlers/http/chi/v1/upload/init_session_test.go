package upload_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	uploadhandler "media-vault/internal/adapters/handlers/http/chi/v1/upload"
	"media-vault/internal/core/domain"
	"media-vault/internal/core/port"
	"media-vault/internal/core/service/upload"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestInitSessionV1_Success(t *testing.T) {
	// Arrange
	principal := member()
	sessionID := uuid.New()
	init := &domain.SessionInit{
		SessionID:      sessionID,
		StorageKey:     "restricted/attachment/" + principal.ID.String() + "/1-bundle.zip",
		ChunkSizeBytes: 5 * 1024 * 1024,
		TotalChunks:    2,
		ExpiresAt:      time.Now().Add(24 * time.Hour),
		Parts: []domain.PresignedPart{
			{PartNumber: 1, URL: "https://storage/part-1", SizeBytes: 5 * 1024 * 1024},
			{PartNumber: 2, URL: "https://storage/part-2", SizeBytes: 3 * 1024 * 1024},
		},
	}

	mockService := upload.NewMockUploadService()
	mockService.On("InitSession", mock.Anything, principal, mock.MatchedBy(func(in port.InitSessionInput) bool {
		return in.Category == domain.CategoryAttachment && in.TotalSizeBytes == 8*1024*1024
	})).Return(init, nil)
	h := newTestRouter(mockService)
	w := httptest.NewRecorder()

	body, err := json.Marshal(uploadhandler.V1InitSessionRequest{
		Category:       "attachment",
		Filename:       "bundle.zip",
		MimeType:       "application/zip",
		TotalSizeBytes: 8 * 1024 * 1024,
	})
	require.NoError(t, err)
	req := authedRequest(http.MethodPost, "/api/v1/uploads/sessions", bytes.NewReader(body), principal)

	// Act
	h.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusCreated, w.Code)
	var response uploadhandler.V1InitSessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, sessionID, response.SessionID)
	assert.Equal(t, 2, response.TotalChunks)
	require.Len(t, response.Parts, 2)
	assert.Equal(t, "https://storage/part-2", response.Parts[1].URL)
	mockService.AssertExpectations(t)
}

func TestInitSessionV1_Errors(t *testing.T) {

	t.Run("role denial maps to 403", func(t *testing.T) {
		// Arrange
		mockService := upload.NewMockUploadService()
		mockService.On("InitSession", mock.Anything, mock.Anything, mock.Anything).
			Return((*domain.SessionInit)(nil), domain.ErrPolicyDenied)
		h := newTestRouter(mockService)
		w := httptest.NewRecorder()

		body, _ := json.Marshal(uploadhandler.V1InitSessionRequest{
			Category:       "raw_footage",
			Filename:       "day1.mxf",
			MimeType:       "video/mxf",
			TotalSizeBytes: 1 << 30,
		})
		req := authedRequest(http.MethodPost, "/api/v1/uploads/sessions", bytes.NewReader(body), member())

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("chunk plan rejection maps to 400", func(t *testing.T) {
		// Arrange
		mockService := upload.NewMockUploadService()
		mockService.On("InitSession", mock.Anything, mock.Anything, mock.Anything).
			Return((*domain.SessionInit)(nil), domain.ErrInvalidChunkPlan)
		h := newTestRouter(mockService)
		w := httptest.NewRecorder()

		body, _ := json.Marshal(uploadhandler.V1InitSessionRequest{
			Category:       "attachment",
			Filename:       "bundle.zip",
			MimeType:       "application/zip",
			TotalSizeBytes: 1024,
		})
		req := authedRequest(http.MethodPost, "/api/v1/uploads/sessions", bytes.NewReader(body), member())

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing declared size", func(t *testing.T) {
		// Arrange
		mockService := upload.NewMockUploadService()
		h := newTestRouter(mockService)
		w := httptest.NewRecorder()

		body, _ := json.Marshal(uploadhandler.V1InitSessionRequest{
			Category: "attachment",
			Filename: "bundle.zip",
			MimeType: "application/zip",
		})
		req := authedRequest(http.MethodPost, "/api/v1/uploads/sessions", bytes.NewReader(body), member())

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "InitSession")
	})
}
