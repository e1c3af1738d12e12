package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "text-embedding-ada-002", cfg.EmbeddingModel)
	assert.Equal(t, 1536, cfg.EmbeddingDimensions)
	assert.Equal(t, "gpt-4o-mini", cfg.ChatModel)
	assert.Equal(t, 1000, cfg.ChunkSize)
	assert.Equal(t, 200, cfg.ChunkOverlap)
	assert.Equal(t, 4, cfg.RetrievalK)
	assert.Equal(t, 8, cfg.MaxContextChunks)
	assert.Equal(t, 5000, cfg.AnalyzePrefixChars)
	assert.Equal(t, 30*time.Second, cfg.EmbedTimeout)
	assert.Equal(t, 120*time.Second, cfg.LLMTimeout)
	assert.Equal(t, int64(20971520), cfg.MaxUploadBytes)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DOCQA_PORT", "9090")
	t.Setenv("DOCQA_DEBUG", "true")
	t.Setenv("DOCQA_CHUNK_SIZE", "500")
	t.Setenv("DOCQA_CHUNK_OVERLAP", "50")
	t.Setenv("DOCQA_EMBED_TIMEOUT", "5s")
	t.Setenv("DOCQA_CHAT_MODEL", "gpt-4o")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 500, cfg.ChunkSize)
	assert.Equal(t, 50, cfg.ChunkOverlap)
	assert.Equal(t, 5*time.Second, cfg.EmbedTimeout)
	assert.Equal(t, "gpt-4o", cfg.ChatModel)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("DOCQA_CHUNK_SIZE", "not-a-number")

	_, err := Load()

	assert.Error(t, err)
}

func TestHasOpenAI(t *testing.T) {
	t.Setenv("DOCQA_OPENAI_API_KEY", "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.HasOpenAI())

	t.Setenv("DOCQA_OPENAI_API_KEY", "sk-test")
	cfg, err = Load()
	require.NoError(t, err)
	assert.True(t, cfg.HasOpenAI())
}
