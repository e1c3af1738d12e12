package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	OpenAIAPIKey        string `envconfig:"OPENAI_API_KEY"`
	EmbeddingModel      string `envconfig:"EMBEDDING_MODEL" default:"text-embedding-ada-002"`
	EmbeddingDimensions int    `envconfig:"EMBEDDING_DIMENSIONS" default:"1536"`
	ChatModel           string `envconfig:"CHAT_MODEL" default:"gpt-4o-mini"`

	ChunkSize    int `envconfig:"CHUNK_SIZE" default:"1000"`
	ChunkOverlap int `envconfig:"CHUNK_OVERLAP" default:"200"`

	RetrievalK         int `envconfig:"RETRIEVAL_K" default:"4"`
	MaxContextChunks   int `envconfig:"MAX_CONTEXT_CHUNKS" default:"8"`
	AnalyzePrefixChars int `envconfig:"ANALYZE_PREFIX_CHARS" default:"5000"`

	EmbedTimeout time.Duration `envconfig:"EMBED_TIMEOUT" default:"30s"`
	LLMTimeout   time.Duration `envconfig:"LLM_TIMEOUT" default:"120s"`

	MaxUploadBytes int64 `envconfig:"MAX_UPLOAD_BYTES" default:"20971520"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("DOCQA", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// HasOpenAI reports whether the OpenAI credential is configured. A missing
// key keeps the server bootable; LLM-dependent calls fail with a
// configuration error instead.
func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}
