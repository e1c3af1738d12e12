// Package store holds the in-memory document collection. State lives for the
// process lifetime only; a restart clears all documents by design.
package store

import (
	"sync"

	"github.com/cloo-solutions/docqa/internal/domain"
	"github.com/cloo-solutions/docqa/internal/index"
)

// DocumentStore maps document ids to extracted text and the companion
// embedding index. A document and its index are inserted and removed as one
// unit, so an index is either fully absent or fully queryable — the
// aggregator can never observe a half-built or half-deleted entry. Indices
// themselves are immutable, which makes snapshots safe to search after the
// lock is released.
type DocumentStore struct {
	mu      sync.RWMutex
	docs    map[string]*domain.Document
	indices map[string]*index.Index
}

// New creates an empty DocumentStore.
func New() *DocumentStore {
	return &DocumentStore{
		docs:    make(map[string]*domain.Document),
		indices: make(map[string]*index.Index),
	}
}

// Put inserts a document together with its built index. Ids are generated
// fresh per upload and never reused, so overwriting is rejected outright.
func (s *DocumentStore) Put(doc *domain.Document, ix *index.Index) error {
	if err := domain.ValidateDocument(doc); err != nil {
		return domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid document", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.docs[doc.ID]; exists {
		return domain.ErrDocumentAlreadyExists
	}
	s.docs[doc.ID] = doc
	s.indices[doc.ID] = ix
	return nil
}

// Get returns the document for the given id.
func (s *DocumentStore) Get(id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return doc, nil
}

// Delete removes the document and its index together.
func (s *DocumentStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return domain.ErrDocumentNotFound
	}
	delete(s.docs, id)
	delete(s.indices, id)
	return nil
}

// List returns all stored documents in unspecified order.
func (s *DocumentStore) List() []*domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]*domain.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}
	return docs
}

// Len returns the number of stored documents.
func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// IndexedDocument pairs a document with its live index for retrieval.
type IndexedDocument struct {
	Document *domain.Document
	Index    *index.Index
}

// Snapshot returns an atomic view of all live documents and their indices.
// The returned slice is private to the caller; concurrent Put/Delete calls
// affect later snapshots only.
func (s *DocumentStore) Snapshot() []IndexedDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]IndexedDocument, 0, len(s.docs))
	for id, doc := range s.docs {
		snapshot = append(snapshot, IndexedDocument{
			Document: doc,
			Index:    s.indices[id],
		})
	}
	return snapshot
}
