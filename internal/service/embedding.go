package service

import (
	"context"
	"time"
)

// EmbeddingClient defines the interface for generating embeddings
type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// boundedEmbedder applies a per-call timeout to every embedding request so a
// stalled backend fails the operation instead of hanging the caller.
type boundedEmbedder struct {
	client  EmbeddingClient
	timeout time.Duration
}

func newBoundedEmbedder(client EmbeddingClient, timeout time.Duration) *boundedEmbedder {
	return &boundedEmbedder{client: client, timeout: timeout}
}

func (e *boundedEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	return e.client.GenerateEmbedding(ctx, text)
}
