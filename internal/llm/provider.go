package llm

import (
	"context"
	"fmt"
)

// Provider defines the interface for LLM providers.
type Provider interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name returns the name of this provider.
	Name() string
}

// GenerationError reports a failure of the external generation service
// while producing an answer. The request fails as a whole; no partial
// answer is returned.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation service: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
