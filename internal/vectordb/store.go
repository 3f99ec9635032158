package vectordb

import "context"

// Store defines the interface for the persistent vector index.
// Reads are safe for concurrent use; writes happen during offline
// ingestion, not concurrently with serving traffic.
type Store interface {
	// Add appends one indexed vector per document. Every document must
	// carry an embedding of the index's dimensionality.
	Add(ctx context.Context, docs []Document) error

	// Query returns up to k nearest documents to the given vector,
	// restricted to entries whose topic tag matches topic (empty topic
	// means no restriction). An empty index or an unsatisfiable filter
	// yields an empty result, not an error.
	Query(ctx context.Context, vector []float32, k int, topic string) ([]Result, error)

	// Count returns the total number of indexed vectors.
	Count() int
}
