package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cloo-solutions/docqa/internal/api"
	"github.com/cloo-solutions/docqa/internal/service"
)

type QAServiceInterface interface {
	Answer(ctx context.Context, question, documentID string) (*service.Answer, error)
	Analyze(ctx context.Context, ids []string) (string, error)
	Chat(ctx context.Context, message string, history []service.ChatMessage) (string, error)
}

type QAHandler struct {
	svc QAServiceInterface
}

func NewQAHandler(svc QAServiceInterface) *QAHandler {
	return &QAHandler{svc: svc}
}

type AskRequest struct {
	Question   string `json:"question"`
	DocumentID string `json:"document_id,omitempty"`
}

type SourceResponse struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
}

type AskResponse struct {
	Answer  string            `json:"answer"`
	Sources []*SourceResponse `json:"sources"`
}

func (h *QAHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Question == "" {
		api.Error(w, http.StatusBadRequest, "question is required")
		return
	}

	answer, err := h.svc.Answer(r.Context(), req.Question, req.DocumentID)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	sources := make([]*SourceResponse, len(answer.Sources))
	for i, s := range answer.Sources {
		sources[i] = &SourceResponse{
			DocumentID: s.DocumentID,
			Filename:   s.Filename,
		}
	}

	api.Success(w, http.StatusOK, AskResponse{
		Answer:  answer.Answer,
		Sources: sources,
	})
}

type AnalyzeRequest struct {
	DocumentIDs []string `json:"document_ids,omitempty"`
}

type AnalyzeResponse struct {
	Analysis string `json:"analysis"`
}

func (h *QAHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	analysis, err := h.svc.Analyze(r.Context(), req.DocumentIDs)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, AnalyzeResponse{Analysis: analysis})
}

type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message string     `json:"message"`
	History []ChatTurn `json:"history,omitempty"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

func (h *QAHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Message == "" {
		api.Error(w, http.StatusBadRequest, "message is required")
		return
	}

	history := make([]service.ChatMessage, len(req.History))
	for i, turn := range req.History {
		history[i] = service.ChatMessage{
			Role:    turn.Role,
			Content: turn.Content,
		}
	}

	reply, err := h.svc.Chat(r.Context(), req.Message, history)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, ChatResponse{Reply: reply})
}
