package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cloo-solutions/docqa/internal/api"
	"github.com/cloo-solutions/docqa/internal/domain"
)

// MockDocumentService mocks the ingestion service.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, filename string, data []byte) (*domain.Document, error) {
	args := m.Called(ctx, filename, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDocumentService) List(ctx context.Context) []*domain.Document {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*domain.Document)
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestUploadHandler_Success(t *testing.T) {
	doc := domain.NewDocument("doc-1", "notes.txt", domain.FormatPlainText, "hello", time.Now())
	svc := new(MockDocumentService)
	svc.On("Upload", mock.Anything, "notes.txt", []byte("hello")).Return(doc, nil)
	handler := NewDocumentHandler(svc)

	body, contentType := multipartBody(t, "notes.txt", "hello")
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.Upload(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data UploadResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "doc-1", resp.Data.DocumentID)
	assert.Equal(t, "notes.txt", resp.Data.Filename)
	svc.AssertExpectations(t)
}

func TestUploadHandler_MissingFilePart(t *testing.T) {
	handler := NewDocumentHandler(new(MockDocumentService))

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("not multipart"))
	rec := httptest.NewRecorder()

	handler.Upload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "file")
}

func TestUploadHandler_UnsupportedFormat(t *testing.T) {
	svc := new(MockDocumentService)
	svc.On("Upload", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.NewUnsupportedFormatError(".exe", []string{".txt"}))
	handler := NewDocumentHandler(svc)

	body, contentType := multipartBody(t, "virus.exe", "MZ")
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.Upload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, domain.ErrCodeUnsupportedFormat, resp.Code)
}

func TestUploadHandler_EmbeddingFailureIsBadGateway(t *testing.T) {
	svc := new(MockDocumentService)
	svc.On("Upload", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.NewEmbeddingServiceError(assert.AnError))
	handler := NewDocumentHandler(svc)

	body, contentType := multipartBody(t, "notes.txt", "hello")
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.Upload(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestDeleteHandler_Success(t *testing.T) {
	svc := new(MockDocumentService)
	svc.On("Delete", mock.Anything, "doc-1").Return(nil)
	handler := NewDocumentHandler(svc)

	router := chi.NewRouter()
	router.Delete("/documents/{id}", handler.Delete)

	req := httptest.NewRequest(http.MethodDelete, "/documents/doc-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "deleted")
	svc.AssertExpectations(t)
}

func TestDeleteHandler_NotFound(t *testing.T) {
	svc := new(MockDocumentService)
	svc.On("Delete", mock.Anything, "missing").Return(domain.ErrDocumentNotFound)
	handler := NewDocumentHandler(svc)

	router := chi.NewRouter()
	router.Delete("/documents/{id}", handler.Delete)

	req := httptest.NewRequest(http.MethodDelete, "/documents/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, domain.ErrCodeNotFound, resp.Code)
}

func TestListHandler(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)
	svc := new(MockDocumentService)
	svc.On("List", mock.Anything).Return([]*domain.Document{
		domain.NewDocument("doc-1", "a.txt", domain.FormatPlainText, "text", created),
	})
	handler := NewDocumentHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/documents", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data DocumentListResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data.Documents, 1)
	assert.Equal(t, "doc-1", resp.Data.Documents[0].ID)
	assert.Equal(t, "a.txt", resp.Data.Documents[0].Filename)
	assert.Equal(t, "plain_text", resp.Data.Documents[0].Format)
	assert.Equal(t, "2026-08-01T10:30:00Z", resp.Data.Documents[0].CreatedAt)
}

func TestListHandler_Empty(t *testing.T) {
	svc := new(MockDocumentService)
	svc.On("List", mock.Anything).Return([]*domain.Document{})
	handler := NewDocumentHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/documents", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"documents":[]`)
}
