package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cloo-solutions/docqa/internal/api/handlers"
	"github.com/cloo-solutions/docqa/internal/config"
	"github.com/cloo-solutions/docqa/internal/openai"
	"github.com/cloo-solutions/docqa/internal/server"
	"github.com/cloo-solutions/docqa/internal/service"
	"github.com/cloo-solutions/docqa/internal/store"
	"github.com/cloo-solutions/docqa/internal/telemetry"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the docqa API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize Sentry with tracing if SENTRY_DSN is set
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		// Default to 10% sampling in production, 100% in development
		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              dsn,
			Environment:      environment,
			TracesSampleRate: sampleRate,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	// All document state is process-memory only; a restart clears it.
	docStore := store.New()

	var embeddingClient service.EmbeddingClient
	var completionClient service.CompletionClient
	if cfg.HasOpenAI() {
		embeddingClient = openai.NewClientForModel(cfg.OpenAIAPIKey, cfg.EmbeddingModel, cfg.EmbeddingDimensions)
		completionClient = &chatClientAdapter{
			client: openai.NewChatClient(cfg.OpenAIAPIKey, cfg.ChatModel),
		}
		log.Println("OpenAI backend configured")
	} else {
		log.Println("DOCQA_OPENAI_API_KEY not set: uploads and LLM calls will fail with a configuration error")
	}

	chunkCfg := service.ChunkConfig{
		WindowSize: cfg.ChunkSize,
		Overlap:    cfg.ChunkOverlap,
	}
	retrievalCfg := service.RetrievalConfig{
		KPerDocument:     cfg.RetrievalK,
		MaxContextChunks: cfg.MaxContextChunks,
	}

	ingestSvc := service.NewIngestService(docStore, embeddingClient, chunkCfg, cfg.EmbedTimeout)
	retrievalSvc := service.NewRetrievalService(docStore, embeddingClient, retrievalCfg, cfg.EmbedTimeout)
	llmAdapter := service.NewLLMAdapter(completionClient, cfg.LLMTimeout)
	qaSvc := service.NewQAService(docStore, retrievalSvc, llmAdapter, cfg.AnalyzePrefixChars)

	routerCfg := server.RouterConfig{
		DocumentHandler: handlers.NewDocumentHandler(ingestSvc),
		QAHandler:       handlers.NewQAHandler(qaSvc),
		MaxBodyBytes:    cfg.MaxUploadBytes,
	}

	router := server.NewRouter(routerCfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}

// chatClientAdapter bridges the service-level message type to the OpenAI
// chat client.
type chatClientAdapter struct {
	client *openai.ChatClient
}

func (a *chatClientAdapter) Complete(ctx context.Context, messages []service.ChatMessage) (string, error) {
	converted := make([]openai.ChatMessage, len(messages))
	for i, m := range messages {
		converted[i] = openai.ChatMessage{
			Role:    m.Role,
			Content: m.Content,
		}
	}
	return a.client.Complete(ctx, converted)
}
