package engine

import (
	"context"
	"fmt"
	"log"

	"github.com/clinassist/clinrag/internal/chunker"
	"github.com/clinassist/clinrag/internal/embeddings"
	"github.com/clinassist/clinrag/internal/vectordb"
)

// IndexDocument chunks a registered document, embeds the chunks in document
// mode and writes them to the vector index. It returns the number of chunks
// written. The id must reference an uploaded document, otherwise
// registry.ErrNotFound is returned.
func (e *Engine) IndexDocument(ctx context.Context, id string) (int, error) {
	if e.registry == nil {
		return 0, fmt.Errorf("no document registry configured")
	}

	doc, err := e.registry.Get(ctx, id)
	if err != nil {
		return 0, err
	}

	size := e.opts.ChunkSize
	if size <= 0 {
		size = chunker.DefaultSize
	}
	overlap := e.opts.ChunkOverlap
	if overlap <= 0 {
		overlap = chunker.DefaultOverlap
	}

	chunks, err := chunker.Split(doc.Content, size, overlap)
	if err != nil {
		return 0, fmt.Errorf("chunking document %s: %w", id, err)
	}
	if len(chunks) == 0 {
		return 0, fmt.Errorf("document %s produced no chunks", id)
	}

	vectors, err := e.embedder.Embed(ctx, chunks, embeddings.InputDocument)
	if err != nil {
		return 0, err
	}
	if len(vectors) != len(chunks) {
		return 0, &embeddings.ServiceError{
			Provider: e.embedder.Name(),
			Err:      fmt.Errorf("got %d vectors for %d chunks", len(vectors), len(chunks)),
		}
	}

	docs := make([]vectordb.Document, len(chunks))
	for i, chunk := range chunks {
		docs[i] = vectordb.Document{
			ID:        fmt.Sprintf("%s:%d", shortID(doc.ID), i),
			Content:   chunk,
			Embedding: vectors[i],
			Metadata: vectordb.Metadata{
				DocumentID: doc.ID,
				Topic:      doc.Topic,
				Title:      doc.Title,
				Page:       i + 1,
				Sequence:   i,
			},
		}
	}

	if err := e.store.Add(ctx, docs); err != nil {
		return 0, err
	}
	if err := e.registry.MarkIndexed(ctx, doc.ID); err != nil {
		return 0, err
	}

	log.Printf("engine: indexed document %s (%d chunks, topic %s)", shortID(doc.ID), len(chunks), doc.Topic)
	return len(chunks), nil
}

// shortID abbreviates a content-addressed id for chunk ids and logs.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
