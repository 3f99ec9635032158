package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// defaultModels maps a provider to its recommended generation and
// embedding models.
var defaultModels = map[ProviderType]struct {
	Model          string
	EmbeddingModel string
}{
	ProviderGoogle: {Model: "gemini-2.5-flash", EmbeddingModel: "text-embedding-004"},
	ProviderOpenAI: {Model: "gpt-4o-mini", EmbeddingModel: "text-embedding-3-small"},
}

// RunWizard runs an interactive configuration wizard, saves the result to
// the given path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to clinrag! Let's configure the assistant.")
	fmt.Println()

	cfg := DefaultConfig()

	providerPrompt := promptui.Select{
		Label: "Select model provider",
		Items: []string{string(ProviderGoogle), string(ProviderOpenAI)},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)
	cfg.EmbeddingProvider = cfg.Provider

	preset := defaultModels[cfg.Provider]
	cfg.Model = preset.Model
	cfg.EmbeddingModel = preset.EmbeddingModel

	dataDirPrompt := promptui.Prompt{
		Label:   "Data directory (vector index and document registry)",
		Default: cfg.DataDir,
	}
	if cfg.DataDir, err = dataDirPrompt.Run(); err != nil {
		return nil, fmt.Errorf("data directory: %w", err)
	}

	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("invalid port")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	if key := APIKeyEnvVar(cfg.Provider); key != "" && os.Getenv(key) == "" {
		fmt.Printf("Remember to set %s before running `clinrag serve`.\n", key)
	}
	return cfg, nil
}
