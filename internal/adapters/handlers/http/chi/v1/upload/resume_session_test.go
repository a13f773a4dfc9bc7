package upload_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	uploadhandler "media-vault/internal/adapters/handlers/http/chi/v1/upload"
	"media-vault/internal/core/domain"
	"media-vault/internal/core/service/upload"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResumeSessionV1_Success(t *testing.T) {
	// Arrange
	principal := member()
	sessionID := uuid.New()
	resume := &domain.SessionResume{
		SessionID:      sessionID,
		ChunkSizeBytes: 5 * 1024 * 1024,
		TotalChunks:    3,
		Parts: []domain.PresignedPart{
			{PartNumber: 2, URL: "https://storage/part-2", SizeBytes: 5 * 1024 * 1024},
		},
		UploadedParts: []domain.UploadPart{
			{PartNumber: 1, ETag: "etag1"},
			{PartNumber: 3, ETag: "etag3"},
		},
		BytesUploaded:  7 * 1024 * 1024,
		ChunksUploaded: 2,
	}

	mockService := upload.NewMockUploadService()
	mockService.On("ResumeSession", mock.Anything, principal, sessionID).Return(resume, nil)
	h := newTestRouter(mockService)
	w := httptest.NewRecorder()

	req := authedRequest(http.MethodGet,
		"/api/v1/uploads/sessions/"+sessionID.String()+"/resume", nil, principal)

	// Act
	h.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	var response uploadhandler.V1ResumeSessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.RemainingParts, 1)
	assert.Equal(t, 2, response.RemainingParts[0].PartNumber)
	assert.Equal(t, 2, response.ChunksUploaded)
	assert.Equal(t, int64(7*1024*1024), response.BytesUploaded)
	mockService.AssertExpectations(t)
}

func TestResumeSessionV1_Errors(t *testing.T) {

	t.Run("expired session maps to 410", func(t *testing.T) {
		// Arrange
		sessionID := uuid.New()
		mockService := upload.NewMockUploadService()
		mockService.On("ResumeSession", mock.Anything, mock.Anything, sessionID).
			Return((*domain.SessionResume)(nil), domain.ErrExpired)
		h := newTestRouter(mockService)
		w := httptest.NewRecorder()

		req := authedRequest(http.MethodGet,
			"/api/v1/uploads/sessions/"+sessionID.String()+"/resume", nil, member())

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusGone, w.Code)
	})

	t.Run("foreign session maps to 403", func(t *testing.T) {
		// Arrange
		sessionID := uuid.New()
		mockService := upload.NewMockUploadService()
		mockService.On("ResumeSession", mock.Anything, mock.Anything, sessionID).
			Return((*domain.SessionResume)(nil), domain.ErrForbidden)
		h := newTestRouter(mockService)
		w := httptest.NewRecorder()

		req := authedRequest(http.MethodGet,
			"/api/v1/uploads/sessions/"+sessionID.String()+"/resume", nil, member())

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
