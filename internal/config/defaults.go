package config

// DefaultConfig returns a Config with sensible defaults: Gemini for
// generation and embedding, the lenient-but-single relevance threshold,
// and the ingestion chunking the guideline manuals were tuned with.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderGoogle,
		Model:             "gemini-2.5-flash",
		EmbeddingProvider: ProviderGoogle,
		EmbeddingModel:    "text-embedding-004",
		DataDir:           ".clinrag",
		Port:              8000,
		ChunkSize:         1300,
		ChunkOverlap:      200,
		TopK:              8,
		MinSimilarity:     0.2,
		HistoryTurns:      6,
	}
}
