// Package cli provides the command-line interface for Lectern.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lectern-ai/lectern/internal/adapters/driven/ai"
	"github.com/lectern-ai/lectern/internal/adapters/driven/config/file"
	"github.com/lectern-ai/lectern/internal/adapters/driven/storage/sqlite"
	"github.com/lectern-ai/lectern/internal/core/domain"
	"github.com/lectern-ai/lectern/internal/core/ports/driven"
	"github.com/lectern-ai/lectern/internal/core/ports/driving"
	"github.com/lectern-ai/lectern/internal/core/services"
	"github.com/lectern-ai/lectern/internal/logger"
)

// version is set by Execute.
var version = "dev"

// verbose toggles debug logging on stderr.
var verbose bool

// Services used by the commands. Wired by initServices; tests inject
// their own.
var (
	appSettings   domain.AppSettings
	documentStore driven.DocumentStore
	embedService  driven.EmbeddingService
	llmService    driven.LLMService
	chatService   driving.ChatService
	ingestService driving.Ingestor
)

var rootCmd = &cobra.Command{
	Use:   "lectern",
	Short: "Lectern is a local retrieval-augmented question answering tool",
	Long: `Lectern keeps a local knowledge base of embedded document chunks and
answers questions against it with retrieval-augmented generation.
Expensive provider calls run behind a single-flight gate and a per-user
rate limit.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute wires the services and runs the CLI.
func Execute(ver string) error {
	version = ver

	cleanup, err := initServices()
	if err != nil {
		return err
	}
	defer cleanup()

	return rootCmd.Execute()
}

// initServices opens the config store, the document store, and the
// providers. Provider-backed services stay nil without an API key; the
// commands that need them say so.
func initServices() (func(), error) {
	if documentStore != nil {
		return func() {}, nil // Already wired (tests)
	}

	configStore, err := file.NewConfigStore(os.Getenv("LECTERN_CONFIG_DIR"))
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	appSettings = services.NewSettingsService(configStore).Get()

	store, err := sqlite.NewStore(os.Getenv("LECTERN_DATA_DIR"))
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	documentStore = store

	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Error("closing store: %v", err)
		}
		documentStore = nil
	}

	keys := ai.Keys{
		OpenAI:    os.Getenv("OPENAI_API_KEY"),
		Anthropic: os.Getenv("ANTHROPIC_API_KEY"),
	}
	if !ai.Configured(appSettings.Embedding.Provider, keys) ||
		!ai.Configured(appSettings.LLM.Provider, keys) {
		return cleanup, nil
	}

	embedder, err := ai.CreateEmbeddingService(appSettings.Embedding, keys)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("configuring embedding provider: %w", err)
	}
	embedService = embedder

	llm, err := ai.CreateLLMService(appSettings.LLM, keys)
	if err != nil {
		embedder.Close() //nolint:errcheck
		embedService = nil
		cleanup()
		return nil, fmt.Errorf("configuring llm provider: %w", err)
	}
	llmService = llm

	responder := services.NewRAGService(documentStore, embedService, llm, appSettings)
	registry := services.NewTaskRegistry(appSettings.Tasks)
	limiter := services.NewRateLimiter(appSettings.RateLimit)
	registry.Start(context.Background())
	limiter.Start(context.Background())

	chatService = services.NewChatService(responder, registry, limiter)
	ingestService = services.NewIngestService(documentStore, embedService, appSettings)

	return func() {
		registry.Stop()
		limiter.Stop()
		embedService.Close() //nolint:errcheck
		llm.Close()          //nolint:errcheck
		chatService = nil
		ingestService = nil
		embedService = nil
		llmService = nil
		cleanup()
	}, nil
}
