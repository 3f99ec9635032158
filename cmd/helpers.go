package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/clinassist/clinrag/internal/config"
	"github.com/clinassist/clinrag/internal/embeddings"
	"github.com/clinassist/clinrag/internal/engine"
	"github.com/clinassist/clinrag/internal/llm"
	"github.com/clinassist/clinrag/internal/registry"
	"github.com/clinassist/clinrag/internal/vectordb"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `clinrag init` to create a config file", err)
	}
	return cfg, nil
}

// createEmbedderFromConfig creates an embeddings.Embedder based on config.
// Shared by the serve and ingest commands.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	provider := cfg.EmbeddingProvider
	if provider == "" {
		provider = cfg.Provider
	}

	apiKey := os.Getenv(config.APIKeyEnvVar(provider))
	if apiKey == "" {
		return nil, fmt.Errorf("%s environment variable is required for %s embeddings",
			config.APIKeyEnvVar(provider), provider)
	}

	switch provider {
	case config.ProviderOpenAI:
		return embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(cfg.EmbeddingModel)), nil
	case config.ProviderGoogle:
		return embeddings.NewGoogleEmbedder(apiKey, embeddings.GoogleModel(cfg.EmbeddingModel)), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", provider)
	}
}

// createLLMProviderFromConfig creates an LLM provider based on config settings.
func createLLMProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	return llm.NewProvider(string(cfg.Provider), cfg.Model)
}

// buildStack assembles the full query stack from config: vector store,
// document registry, and engine. The caller owns closing the registry.
func buildStack(cfg *config.Config) (*engine.Engine, *registry.Registry, error) {
	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("creating embedder: %w", err)
	}

	provider, err := createLLMProviderFromConfig(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("creating LLM provider: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating data directory: %w", err)
	}

	store, err := vectordb.NewChromemStore(filepath.Join(cfg.DataDir, "vectordb"), embedder)
	if err != nil {
		return nil, nil, fmt.Errorf("opening vector store: %w", err)
	}

	reg, err := registry.Open(filepath.Join(cfg.DataDir, "clinrag.db"))
	if err != nil {
		return nil, nil, fmt.Errorf("opening document registry: %w", err)
	}

	eng := engine.New(store, embedder, provider, reg, engine.Options{
		Model:         cfg.Model,
		TopK:          cfg.TopK,
		MinSimilarity: cfg.MinSimilarity,
		HistoryTurns:  cfg.HistoryTurns,
		ChunkSize:     cfg.ChunkSize,
		ChunkOverlap:  cfg.ChunkOverlap,
	})
	return eng, reg, nil
}
