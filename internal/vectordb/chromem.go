package vectordb

import (
	"context"
	"fmt"
	"strconv"

	chromem "github.com/philippgille/chromem-go"

	"github.com/clinassist/clinrag/internal/embeddings"
)

const collectionName = "guidelines"

// ChromemStore implements Store using chromem-go with on-disk persistence,
// so the index survives process restarts.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
	dimensions int
}

// NewChromemStore opens (or creates) a persistent store in the given directory.
// The embedder is only used as chromem's fallback embedding function; all
// writes and queries in this package carry precomputed vectors.
func NewChromemStore(path string, embedder embeddings.Embedder) (*ChromemStore, error) {
	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("open vector db at %s: %w", path, err)
	}

	col, err := db.GetOrCreateCollection(collectionName, nil, embeddings.ToChromemFunc(embedder))
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &ChromemStore{
		db:         db,
		collection: col,
		dimensions: embedder.Dimensions(),
	}, nil
}

func (s *ChromemStore) Add(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	ids := make([]string, len(docs))
	vectors := make([][]float32, len(docs))
	metadatas := make([]map[string]string, len(docs))
	contents := make([]string, len(docs))

	for i, doc := range docs {
		if doc.ID == "" {
			return &WriteError{Err: fmt.Errorf("document %d has no id", i)}
		}
		if len(doc.Embedding) == 0 {
			return &WriteError{Err: fmt.Errorf("document %s has no embedding", doc.ID)}
		}
		if len(doc.Embedding) != s.dimensions {
			return &WriteError{Err: fmt.Errorf("document %s has %d dimensions, index has %d", doc.ID, len(doc.Embedding), s.dimensions)}
		}
		ids[i] = doc.ID
		vectors[i] = doc.Embedding
		metadatas[i] = metadataToMap(doc.Metadata)
		contents[i] = doc.Content
	}

	if err := s.collection.Add(ctx, ids, vectors, metadatas, contents); err != nil {
		return &WriteError{Err: err}
	}
	return nil
}

func (s *ChromemStore) Query(ctx context.Context, vector []float32, k int, topic string) ([]Result, error) {
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	// chromem-go requires nResults <= collection size, but caps it at the
	// filtered match count itself when a where-filter leaves fewer than k
	// documents, so no further clamping is needed here.
	if k > count {
		k = count
	}
	if k <= 0 {
		return nil, nil
	}

	var where map[string]string
	if topic != "" {
		where = map[string]string{"topic": topic}
	}

	results, err := s.collection.QueryEmbedding(ctx, vector, k, where, nil)
	if err != nil {
		return nil, &QueryError{Err: err}
	}

	out := make([]Result, len(results))
	for i, r := range results {
		out[i] = Result{
			Document: Document{
				ID:       r.ID,
				Content:  r.Content,
				Metadata: mapToMetadata(r.Metadata),
			},
			Similarity: r.Similarity,
		}
	}
	return out, nil
}

func (s *ChromemStore) Count() int {
	return s.collection.Count()
}

// metadataToMap flattens Metadata into the map[string]string chromem stores.
func metadataToMap(m Metadata) map[string]string {
	return map[string]string{
		"document_id": m.DocumentID,
		"topic":       m.Topic,
		"title":       m.Title,
		"page":        strconv.Itoa(m.Page),
		"sequence":    strconv.Itoa(m.Sequence),
	}
}

func mapToMetadata(m map[string]string) Metadata {
	page, _ := strconv.Atoi(m["page"])
	seq, _ := strconv.Atoi(m["sequence"])
	return Metadata{
		DocumentID: m["document_id"],
		Topic:      m["topic"],
		Title:      m["title"],
		Page:       page,
		Sequence:   seq,
	}
}
