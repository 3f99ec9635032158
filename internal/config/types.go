package config

// ProviderType identifies an external model provider.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderGoogle ProviderType = "google"
)

// Config is the top-level clinrag configuration, corresponding to .clinrag.yml.
type Config struct {
	Provider          ProviderType `yaml:"provider" koanf:"provider"`
	Model             string       `yaml:"model" koanf:"model"`
	EmbeddingProvider ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string       `yaml:"embedding_model" koanf:"embedding_model"`
	DataDir           string       `yaml:"data_dir" koanf:"data_dir"`
	Port              int          `yaml:"port" koanf:"port"`
	ChunkSize         int          `yaml:"chunk_size" koanf:"chunk_size"`
	ChunkOverlap      int          `yaml:"chunk_overlap" koanf:"chunk_overlap"`
	TopK              int          `yaml:"top_k" koanf:"top_k"`
	MinSimilarity     float64      `yaml:"min_similarity" koanf:"min_similarity"`
	HistoryTurns      int          `yaml:"history_turns" koanf:"history_turns"`
}
