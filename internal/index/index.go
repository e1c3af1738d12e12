// Package index provides per-document in-memory vector indices with
// brute-force cosine similarity search.
package index

import (
	"context"
	"math"
	"sort"

	"github.com/cloo-solutions/docqa/internal/domain"
)

// Embedder generates a fixed-dimension vector for a piece of text.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// Entry pairs a chunk's text with its embedding vector and attribution
// metadata.
type Entry struct {
	DocumentID string
	Text       string
	Vector     []float32
}

// Match is a search hit: a chunk annotated with its similarity score.
type Match struct {
	DocumentID string
	Text       string
	Score      float32
}

// Index is the searchable vector structure for exactly one document.
// It is immutable after Build; updating a document means building a new
// index, never mutating in place.
type Index struct {
	documentID string
	entries    []Entry
}

// Build embeds every chunk and assembles an index. The build is
// all-or-nothing: if any embedding call fails, no index is returned and
// nothing partial is kept.
func Build(ctx context.Context, embedder Embedder, documentID string, chunks []string) (*Index, error) {
	entries := make([]Entry, 0, len(chunks))
	for _, chunk := range chunks {
		vector, err := embedder.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return nil, domain.NewEmbeddingServiceError(err)
		}
		entries = append(entries, Entry{
			DocumentID: documentID,
			Text:       chunk,
			Vector:     vector,
		})
	}

	return &Index{
		documentID: documentID,
		entries:    entries,
	}, nil
}

// DocumentID returns the owning document's id.
func (ix *Index) DocumentID() string {
	return ix.documentID
}

// Len returns the number of indexed chunks.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Search returns the k nearest chunks to the query vector by cosine
// similarity, best first. Ties are broken by insertion order: the
// earliest-built chunk wins, which a stable sort guarantees.
func (ix *Index) Search(queryVector []float32, k int) []Match {
	if k <= 0 || len(ix.entries) == 0 {
		return nil
	}

	matches := make([]Match, 0, len(ix.entries))
	for _, entry := range ix.entries {
		matches = append(matches, Match{
			DocumentID: entry.DocumentID,
			Text:       entry.Text,
			Score:      cosineSimilarity(queryVector, entry.Vector),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if k > len(matches) {
		k = len(matches)
	}
	return matches[:k]
}

func cosineSimilarity(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
