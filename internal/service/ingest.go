package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cloo-solutions/docqa/internal/domain"
	"github.com/cloo-solutions/docqa/internal/extract"
	"github.com/cloo-solutions/docqa/internal/index"
	"github.com/cloo-solutions/docqa/internal/store"
	"github.com/cloo-solutions/docqa/internal/telemetry"
)

// IngestService runs the upload pipeline: resolve format, extract text,
// chunk, build the embedding index, and store everything as one unit.
// If any stage fails the upload fails whole; no partial document persists.
type IngestService struct {
	store    *store.DocumentStore
	embedder EmbeddingClient
	chunkCfg ChunkConfig
}

// NewIngestService creates a new IngestService instance. A nil embedder
// marks the embedding backend as unconfigured; uploads then fail with a
// configuration error instead of crashing startup.
func NewIngestService(docStore *store.DocumentStore, embedder EmbeddingClient, chunkCfg ChunkConfig, embedTimeout time.Duration) *IngestService {
	var bounded EmbeddingClient
	if embedder != nil {
		bounded = newBoundedEmbedder(embedder, embedTimeout)
	}
	return &IngestService{
		store:    docStore,
		embedder: bounded,
		chunkCfg: chunkCfg,
	}
}

// Upload ingests a named file payload and returns the stored document.
func (s *IngestService) Upload(ctx context.Context, filename string, data []byte) (*domain.Document, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, domain.ErrEmptyFilename
	}

	format, err := domain.FormatFromFilename(filename)
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartSpan(ctx, "IngestService.Upload", telemetry.SpanAttributes{
		Format:    string(format),
		Operation: "upload",
	})
	defer span.End()

	if s.embedder == nil {
		return nil, domain.ErrEmbeddingNotConfigured
	}

	text, err := extract.Extract(format, filename, data)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, "document contains no extractable text")
	}

	chunks := chunkText(text, s.chunkCfg)

	docID := uuid.NewString()
	ix, err := index.Build(ctx, s.embedder, docID, chunks)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	doc := domain.NewDocument(docID, filename, format, text, time.Now().UTC())
	if err := s.store.Put(doc, ix); err != nil {
		return nil, err
	}

	return doc, nil
}

// Delete removes a document and its index together.
func (s *IngestService) Delete(ctx context.Context, id string) error {
	_, span := telemetry.StartSpan(ctx, "IngestService.Delete", telemetry.SpanAttributes{
		DocumentID: id,
		Operation:  "delete",
	})
	defer span.End()

	return s.store.Delete(id)
}

// List returns all stored documents.
func (s *IngestService) List(ctx context.Context) []*domain.Document {
	return s.store.List()
}
