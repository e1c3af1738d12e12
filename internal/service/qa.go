package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cloo-solutions/docqa/internal/domain"
	"github.com/cloo-solutions/docqa/internal/store"
	"github.com/cloo-solutions/docqa/internal/telemetry"
)

// Retriever builds a ranked retrieval context for a question.
type Retriever interface {
	Retrieve(ctx context.Context, question, documentID string) ([]domain.RetrievedChunk, error)
}

// Completer is the LLM call contract the orchestrator depends on.
type Completer interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}

// Source attributes part of an answer to a stored document.
type Source struct {
	DocumentID string
	Filename   string
}

// Answer is the grounded QA result: the model output plus one source
// attribution per contributing chunk, in ranking order.
type Answer struct {
	Answer  string
	Sources []Source
}

// QAService composes retrieval, prompt templates, and the LLM adapter into
// grounded question answering, plus the retrieval-free analysis flow.
type QAService struct {
	store        *store.DocumentStore
	retriever    Retriever
	llm          Completer
	analyzeChars int
}

// NewQAService creates a new QAService instance.
func NewQAService(docStore *store.DocumentStore, retriever Retriever, llm Completer, analyzePrefixChars int) *QAService {
	if analyzePrefixChars <= 0 {
		analyzePrefixChars = 5000
	}
	return &QAService{
		store:        docStore,
		retriever:    retriever,
		llm:          llm,
		analyzeChars: analyzePrefixChars,
	}
}

// Answer retrieves context for the question, renders the grounded QA prompt,
// and returns the model output with source attributions. When documentID is
// set, retrieval is restricted to that document; the default is a global
// merge across all stored documents.
func (s *QAService) Answer(ctx context.Context, question, documentID string) (*Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.ErrEmptyQuestion
	}

	ctx, span := telemetry.StartSpan(ctx, "QAService.Answer", telemetry.SpanAttributes{
		DocumentID: documentID,
		Operation:  "answer",
	})
	defer span.End()

	chunks, err := s.retriever.Retrieve(ctx, question, documentID)
	if err != nil {
		return nil, err
	}

	contextParts := make([]string, 0, len(chunks))
	sources := make([]Source, 0, len(chunks))
	for _, chunk := range chunks {
		contextParts = append(contextParts, chunk.Text)
		sources = append(sources, Source{
			DocumentID: chunk.DocumentID,
			Filename:   chunk.Filename,
		})
	}

	prompt := renderQAPrompt(strings.Join(contextParts, "\n\n"), question)
	out, err := s.llm.Complete(ctx, []ChatMessage{{Role: RoleUser, Content: prompt}})
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	return &Answer{
		Answer:  out,
		Sources: sources,
	}, nil
}

// Analyze bypasses retrieval: it concatenates a bounded prefix of every
// selected document (all documents when ids is empty) into one analysis
// prompt and returns the free-text result with no source list.
func (s *QAService) Analyze(ctx context.Context, ids []string) (string, error) {
	ctx, span := telemetry.StartSpan(ctx, "QAService.Analyze", telemetry.SpanAttributes{
		Operation: "analyze",
	})
	defer span.End()

	var docs []*domain.Document
	if len(ids) == 0 {
		docs = s.store.List()
	} else {
		for _, id := range ids {
			doc, err := s.store.Get(id)
			if err != nil {
				return "", err
			}
			docs = append(docs, doc)
		}
	}
	if len(docs) == 0 {
		return "", domain.ErrNoDocuments
	}

	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].CreatedAt.Before(docs[j].CreatedAt)
		}
		return docs[i].ID < docs[j].ID
	})

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		parts = append(parts, fmt.Sprintf("Document %s (%s):\n%s", doc.ID, doc.Filename, prefixChars(doc.RawText, s.analyzeChars)))
	}

	out, err := s.llm.Complete(ctx, []ChatMessage{{Role: RoleUser, Content: renderAnalysisPrompt(parts)}})
	if err != nil {
		span.SetError(err)
		return "", err
	}
	return out, nil
}

// Chat forwards a message with optional caller-supplied history straight to
// the LLM adapter. History is never stored server-side.
func (s *QAService) Chat(ctx context.Context, message string, history []ChatMessage) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", domain.NewDomainError(domain.ErrCodeValidation, "message is required")
	}
	for _, turn := range history {
		if turn.Role != RoleUser && turn.Role != RoleAssistant {
			return "", domain.NewDomainError(domain.ErrCodeValidation,
				fmt.Sprintf("invalid history role: %q", turn.Role))
		}
	}

	ctx, span := telemetry.StartSpan(ctx, "QAService.Chat", telemetry.SpanAttributes{
		Operation: "chat",
	})
	defer span.End()

	messages := make([]ChatMessage, 0, len(history)+2)
	messages = append(messages, ChatMessage{Role: RoleSystem, Content: chatSystemPrompt})
	messages = append(messages, history...)
	messages = append(messages, ChatMessage{Role: RoleUser, Content: message})

	out, err := s.llm.Complete(ctx, messages)
	if err != nil {
		span.SetError(err)
		return "", err
	}
	return out, nil
}

func prefixChars(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
