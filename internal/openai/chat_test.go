package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCompletionAPI mocks the chat completion API
type MockCompletionAPI struct {
	mock.Mock
}

func (m *MockCompletionAPI) CreateCompletion(ctx context.Context, messages []ChatMessage) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}

func TestComplete_EmptyMessages(t *testing.T) {
	client := &ChatClient{api: new(MockCompletionAPI)}

	_, err := client.Complete(context.Background(), nil)

	assert.Equal(t, ErrEmptyText, err)
}

func TestComplete_Success(t *testing.T) {
	api := new(MockCompletionAPI)
	api.On("CreateCompletion", mock.Anything, []ChatMessage{
		{Role: RoleUser, Content: "hi"},
	}).Return("hello there", nil)
	client := &ChatClient{api: api}

	out, err := client.Complete(context.Background(), []ChatMessage{{Role: RoleUser, Content: "hi"}})

	require.NoError(t, err)
	assert.Equal(t, "hello there", out)
	api.AssertExpectations(t)
}

func TestComplete_APIError(t *testing.T) {
	api := new(MockCompletionAPI)
	api.On("CreateCompletion", mock.Anything, mock.Anything).Return("", errors.New("upstream failure"))
	client := &ChatClient{api: api}

	_, err := client.Complete(context.Background(), []ChatMessage{{Role: RoleUser, Content: "hi"}})

	assert.EqualError(t, err, "upstream failure")
}
