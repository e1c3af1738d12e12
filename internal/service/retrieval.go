package service

import (
	"context"
	"sort"
	"time"

	"github.com/cloo-solutions/docqa/internal/domain"
	"github.com/cloo-solutions/docqa/internal/store"
	"github.com/cloo-solutions/docqa/internal/telemetry"
)

// RetrievalConfig controls cross-document retrieval.
type RetrievalConfig struct {
	// KPerDocument is the number of nearest chunks fetched from each index.
	KPerDocument int
	// MaxContextChunks caps the merged context handed to the LLM.
	MaxContextChunks int
}

// DefaultRetrievalConfig provides sane defaults for retrieval.
func DefaultRetrievalConfig() RetrievalConfig {
	return RetrievalConfig{
		KPerDocument:     4,
		MaxContextChunks: 8,
	}
}

// RetrievalService merges nearest-neighbor results across all live document
// indices into one globally ranked context.
type RetrievalService struct {
	store    *store.DocumentStore
	embedder EmbeddingClient
	cfg      RetrievalConfig
}

// NewRetrievalService creates a new RetrievalService instance.
func NewRetrievalService(docStore *store.DocumentStore, embedder EmbeddingClient, cfg RetrievalConfig, embedTimeout time.Duration) *RetrievalService {
	var bounded EmbeddingClient
	if embedder != nil {
		bounded = newBoundedEmbedder(embedder, embedTimeout)
	}
	if cfg.KPerDocument <= 0 || cfg.MaxContextChunks <= 0 {
		cfg = DefaultRetrievalConfig()
	}
	return &RetrievalService{
		store:    docStore,
		embedder: bounded,
		cfg:      cfg,
	}
}

// Retrieve embeds the question once and searches every live index (or only
// the one named by documentID when set), merging results by global score.
// An empty store is a no-documents error: the service never answers from
// world knowledge alone.
func (s *RetrievalService) Retrieve(ctx context.Context, question, documentID string) ([]domain.RetrievedChunk, error) {
	ctx, span := telemetry.StartSpan(ctx, "RetrievalService.Retrieve", telemetry.SpanAttributes{
		DocumentID: documentID,
		Operation:  "retrieve",
	})
	defer span.End()

	snapshot := s.store.Snapshot()
	if len(snapshot) == 0 {
		return nil, domain.ErrNoDocuments
	}

	if documentID != "" {
		filtered := snapshot[:0]
		for _, entry := range snapshot {
			if entry.Document.ID == documentID {
				filtered = append(filtered, entry)
			}
		}
		if len(filtered) == 0 {
			return nil, domain.ErrDocumentNotFound
		}
		snapshot = filtered
	}

	if s.embedder == nil {
		return nil, domain.ErrEmbeddingNotConfigured
	}

	queryVector, err := s.embedder.GenerateEmbedding(ctx, question)
	if err != nil {
		span.SetError(err)
		return nil, domain.NewEmbeddingServiceError(err)
	}

	// Deterministic tie-breaking across documents: earliest-stored first.
	sort.SliceStable(snapshot, func(i, j int) bool {
		if !snapshot[i].Document.CreatedAt.Equal(snapshot[j].Document.CreatedAt) {
			return snapshot[i].Document.CreatedAt.Before(snapshot[j].Document.CreatedAt)
		}
		return snapshot[i].Document.ID < snapshot[j].Document.ID
	})

	merged := make([]domain.RetrievedChunk, 0, len(snapshot)*s.cfg.KPerDocument)
	for _, entry := range snapshot {
		for _, match := range entry.Index.Search(queryVector, s.cfg.KPerDocument) {
			merged = append(merged, domain.RetrievedChunk{
				DocumentID: match.DocumentID,
				Filename:   entry.Document.Filename,
				Text:       match.Text,
				Score:      match.Score,
			})
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})

	if len(merged) > s.cfg.MaxContextChunks {
		merged = merged[:s.cfg.MaxContextChunks]
	}

	return merged, nil
}
