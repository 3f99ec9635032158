package vectordb

import "fmt"

// Document represents one indexed guideline chunk: its text, its
// precomputed embedding and denormalized retrieval metadata.
type Document struct {
	ID        string
	Content   string
	Embedding []float32
	Metadata  Metadata
}

// Metadata holds the retrieval attributes stored alongside each chunk.
type Metadata struct {
	DocumentID string // content-addressed id of the source document
	Topic      string // guideline topic tag, e.g. "HTA" or "DIABETES"
	Title      string
	Page       int // position marker within the source document
	Sequence   int // chunk order within the source document
}

// Result pairs a stored document with its similarity to the query vector.
// Similarity is in [0,1], higher means closer.
type Result struct {
	Document   Document
	Similarity float32
}

// Distance converts the similarity back to a distance, lower means closer.
func (r Result) Distance() float32 { return 1 - r.Similarity }

// WriteError reports a failed write to the vector index, including
// chunk/vector length mismatches and dimensionality conflicts.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string { return fmt.Sprintf("vector index write: %v", e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }

// QueryError reports a failed similarity query against the vector index.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string { return fmt.Sprintf("vector index query: %v", e.Err) }
func (e *QueryError) Unwrap() error { return e.Err }
