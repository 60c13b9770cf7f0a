package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	configfile "github.com/custodia-labs/scholar-cli/internal/adapters/driven/config/file"
	openaiembed "github.com/custodia-labs/scholar-cli/internal/adapters/driven/embedding/openai"
	pdfextract "github.com/custodia-labs/scholar-cli/internal/adapters/driven/extractor/pdf"
	openaillm "github.com/custodia-labs/scholar-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/scholar-cli/internal/adapters/driven/provider/arxiv"
	"github.com/custodia-labs/scholar-cli/internal/adapters/driven/storage/csvlog"
	"github.com/custodia-labs/scholar-cli/internal/adapters/driven/tokenizer/tiktoken"
	"github.com/custodia-labs/scholar-cli/internal/chunker"
	"github.com/custodia-labs/scholar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/scholar-cli/internal/core/ports/driving"
	"github.com/custodia-labs/scholar-cli/internal/core/services"
)

// Configuration keys recognized in config.toml.
const (
	keyAPIKey         = "openai.api_key"
	keyChatModel      = "openai.model"
	keyEmbeddingModel = "openai.embedding_model"
	keyTargetSize     = "chunker.target_size"
	keyMaxResults     = "arxiv.max_results"
	keyBestEffort     = "summarizer.best_effort"
)

// Package-level services, wired on first use. Tests replace these
// with mocks.
var (
	configStore       driven.ConfigStore
	indexStore        driven.IndexStore
	librarianService  driving.Librarian
	summarizerService driving.Summarizer
	assistantService  driving.Assistant
)

// scholarDir returns the per-user data directory (~/.scholar).
func scholarDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".scholar"), nil
}

// ensureConfig opens the TOML config store if not already open.
func ensureConfig() (driven.ConfigStore, error) {
	if configStore != nil {
		return configStore, nil
	}
	store, err := configfile.NewConfigStore("")
	if err != nil {
		return nil, fmt.Errorf("open config store: %w", err)
	}
	configStore = store
	return configStore, nil
}

// ensureIndexStore opens the append-only index log if not already open.
func ensureIndexStore() (driven.IndexStore, error) {
	if indexStore != nil {
		return indexStore, nil
	}
	dir, err := scholarDir()
	if err != nil {
		return nil, err
	}
	store, err := csvlog.NewIndexStore(dir)
	if err != nil {
		return nil, fmt.Errorf("open index store: %w", err)
	}
	indexStore = store
	return indexStore, nil
}

// ensureServices wires the full service graph behind the chat, search
// and summarize commands. Safe to call more than once.
func ensureServices() error {
	if assistantService != nil {
		return nil
	}

	// .env is optional; config and real env take over when absent.
	_ = godotenv.Load()

	cfg, err := ensureConfig()
	if err != nil {
		return err
	}
	store, err := ensureIndexStore()
	if err != nil {
		return err
	}

	apiKey := cfg.GetString(keyAPIKey)
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("OpenAI API key not set: run 'scholar config set-key' or set OPENAI_API_KEY")
	}

	embedder, err := openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey: apiKey,
		Model:  cfg.GetString(keyEmbeddingModel),
	})
	if err != nil {
		return fmt.Errorf("embedding service: %w", err)
	}

	completion, err := openaillm.NewCompletionService(openaillm.Config{
		APIKey: apiKey,
		Model:  cfg.GetString(keyChatModel),
	})
	if err != nil {
		return fmt.Errorf("completion service: %w", err)
	}

	tok, err := tiktoken.New("")
	if err != nil {
		return fmt.Errorf("tokenizer: %w", err)
	}

	dir, err := scholarDir()
	if err != nil {
		return err
	}
	downloadDir := filepath.Join(dir, "papers")

	var indexOpts []services.IndexOption
	if n := cfg.GetInt(keyMaxResults); n > 0 {
		indexOpts = append(indexOpts, services.WithSearchLimit(n))
	}
	librarian := services.NewRetrievalIndex(arxiv.New(arxiv.Config{}), embedder, store, downloadDir, indexOpts...)

	var chunkOpts []chunker.Option
	if t := cfg.GetInt(keyTargetSize); t > 0 {
		chunkOpts = append(chunkOpts, chunker.WithTargetSize(t))
	}

	var sumOpts []services.SummarizerOption
	if cfg.GetBool(keyBestEffort) {
		sumOpts = append(sumOpts, services.WithFailurePolicy(services.BestEffort))
	}
	summarizer := services.NewMapReduceSummarizer(
		librarian,
		pdfextract.New(),
		tok,
		completion,
		chunker.New(tok, chunkOpts...),
		sumOpts...,
	)

	dispatcher := services.NewToolDispatcher(completion)
	dispatcher.Register(services.SearchDocumentsTool(librarian))
	dispatcher.Register(services.SummarizeDocumentTool(summarizer))

	librarianService = librarian
	summarizerService = summarizer
	assistantService = dispatcher
	return nil
}
