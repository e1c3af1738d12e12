package service

import (
	"context"
	"time"

	"github.com/cloo-solutions/docqa/internal/domain"
)

// ChatMessage is one turn of a chat-completion conversation.
type ChatMessage struct {
	Role    string
	Content string
}

// Chat message roles accepted by the adapter.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// CompletionClient defines the interface for the chat-completion backend.
type CompletionClient interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}

// LLMAdapter wraps the chat-completion backend behind a uniform call
// contract. Failures are normalized into domain errors: a missing credential
// is a configuration error, anything from the backend is a backend error
// carrying the upstream message. Raw transport errors never reach callers.
type LLMAdapter struct {
	client  CompletionClient
	timeout time.Duration
}

// NewLLMAdapter creates a new LLMAdapter. A nil client marks the backend as
// unconfigured; every call then fails with a configuration error while the
// process itself keeps running.
func NewLLMAdapter(client CompletionClient, timeout time.Duration) *LLMAdapter {
	return &LLMAdapter{
		client:  client,
		timeout: timeout,
	}
}

// Configured reports whether a backend credential is wired in.
func (a *LLMAdapter) Configured() bool {
	return a.client != nil
}

// Complete performs a single chat-completion call. Stateless: one call is
// one request/response, with no retry policy; callers may layer retries.
func (a *LLMAdapter) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	if a.client == nil {
		return "", domain.ErrLLMNotConfigured
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	out, err := a.client.Complete(ctx, messages)
	if err != nil {
		return "", domain.NewLLMBackendError(err)
	}
	return out, nil
}
