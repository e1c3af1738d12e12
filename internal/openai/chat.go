package openai

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultChatModel is the OpenAI model used for chat completions
const DefaultChatModel = openai.GPT4oMini

// ChatMessage is one turn of a chat-completion conversation.
type ChatMessage struct {
	Role    string
	Content string
}

// Chat message roles.
const (
	RoleSystem    = openai.ChatMessageRoleSystem
	RoleUser      = openai.ChatMessageRoleUser
	RoleAssistant = openai.ChatMessageRoleAssistant
)

// CompletionAPI defines the interface for chat completion generation
type CompletionAPI interface {
	CreateCompletion(ctx context.Context, messages []ChatMessage) (string, error)
}

// ChatClient wraps the OpenAI chat-completion API. One call is one
// request/response; there is no streaming and no retry policy.
type ChatClient struct {
	api CompletionAPI
}

type ChatAdapter struct {
	client *openai.Client
	model  string
}

func NewChatAdapter(apiKey, model string) *ChatAdapter {
	if model == "" {
		model = DefaultChatModel
	}
	return &ChatAdapter{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// CreateCompletion calls the OpenAI API to generate a chat completion
func (a *ChatAdapter) CreateCompletion(ctx context.Context, messages []ChatMessage) (string, error) {
	reqMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		reqMessages = append(reqMessages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    a.model,
		Messages: reqMessages,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no completion choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

// NewChatClient creates a new chat client for the given credential and model.
func NewChatClient(apiKey, model string) *ChatClient {
	return &ChatClient{api: NewChatAdapter(apiKey, model)}
}

// Complete generates a single chat completion for the given messages.
func (c *ChatClient) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	if len(messages) == 0 {
		return "", ErrEmptyText
	}
	return c.api.CreateCompletion(ctx, messages)
}
