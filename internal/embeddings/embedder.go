package embeddings

import (
	"context"
	"fmt"
)

// InputMode tells the embedding service whether the text is an indexed
// document or a search query, for models that encode the two differently.
type InputMode string

const (
	InputDocument InputMode = "document"
	InputQuery    InputMode = "query"
)

// Embedder defines the interface for generating text embeddings.
type Embedder interface {
	// Embed generates one embedding per input text, order-preserving.
	Embed(ctx context.Context, texts []string, mode InputMode) ([][]float32, error)

	// Dimensions returns the number of dimensions in the embedding vectors.
	Dimensions() int

	// Name returns the name/identifier of the embedding model.
	Name() string
}

// ServiceError reports a failure of the external embedding service
// (transport, auth or quota). Callers must surface it, never substitute
// zero vectors.
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("embedding service %s: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }
