package engine

import (
	"context"
	"strings"
)

// Search is the reduced-feature retrieval mode: fixed top-k over the whole
// index, no intent routing, no generation. Hits at or above the relevance
// threshold are labeled grounded.
func (e *Engine) Search(ctx context.Context, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuestion
	}

	results, err := e.retrieve(ctx, query, e.opts.SearchK, "")
	if err != nil {
		return nil, err
	}

	out := make([]SearchResult, len(results))
	for i, r := range results {
		score := round2(float64(r.Similarity))
		out[i] = SearchResult{
			DocumentID: r.Document.Metadata.DocumentID,
			Title:      r.Document.Metadata.Title,
			Snippet:    snippet(r.Document.Content),
			Score:      score,
			Grounded:   float64(r.Similarity) >= e.opts.MinSimilarity,
		}
	}
	return out, nil
}
