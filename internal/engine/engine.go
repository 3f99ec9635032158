// Package engine orchestrates the retrieval-and-grounding pipeline:
// intent routing, topic-filtered similarity search, relevance filtering
// and grounded answer generation with a forced fallback when no evidence
// clears the threshold.
package engine

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/clinassist/clinrag/internal/embeddings"
	"github.com/clinassist/clinrag/internal/intent"
	"github.com/clinassist/clinrag/internal/llm"
	"github.com/clinassist/clinrag/internal/registry"
	"github.com/clinassist/clinrag/internal/vectordb"
)

// snippetLength is the evidence preview length in runes.
const snippetLength = 100

// Options tunes the pipeline. Zero values fall back to the defaults below.
type Options struct {
	Model         string  // generation and classification model
	TopK          int     // retrieval depth for Ask
	SearchK       int     // retrieval depth for the reduced search mode
	MinSimilarity float64 // evidence approval / groundedness threshold
	HistoryTurns  int     // rolling history capacity
	ChunkSize     int
	ChunkOverlap  int
}

const (
	defaultTopK          = 8
	defaultSearchK       = 3
	defaultMinSimilarity = 0.2
	defaultHistoryTurns  = 6
)

// Engine wires the router, the embedder, the vector index, the document
// registry and the generation provider into the ask/search/index operations.
// It is constructed once at startup and safe for concurrent requests.
type Engine struct {
	store    vectordb.Store
	embedder embeddings.Embedder
	provider llm.Provider
	router   *intent.Router
	registry *registry.Registry
	opts     Options
}

// New creates an Engine. The registry may be nil if the indexing flow is
// not used (e.g. a query-only deployment over a prebuilt index).
func New(store vectordb.Store, embedder embeddings.Embedder, provider llm.Provider, reg *registry.Registry, opts Options) *Engine {
	if opts.TopK <= 0 {
		opts.TopK = defaultTopK
	}
	if opts.SearchK <= 0 {
		opts.SearchK = defaultSearchK
	}
	if opts.MinSimilarity <= 0 {
		opts.MinSimilarity = defaultMinSimilarity
	}
	if opts.HistoryTurns <= 0 {
		opts.HistoryTurns = defaultHistoryTurns
	}

	return &Engine{
		store:    store,
		embedder: embedder,
		provider: provider,
		router:   intent.NewRouter(provider, opts.Model),
		registry: reg,
		opts:     opts,
	}
}

// Ask answers a clinical question grounded on retrieved guideline evidence.
// Greetings, off-topic and unclassifiable questions short-circuit with a
// canned answer and no retrieval; topic questions whose evidence all falls
// below the relevance threshold get the fixed insufficient-evidence answer.
func (e *Engine) Ask(ctx context.Context, question string, history []Turn) (*AnswerResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	routed, err := e.router.Classify(ctx, question)
	if err != nil {
		return nil, err
	}
	log.Printf("engine: question routed to %s", routed)

	switch routed {
	case intent.IntentGreeting:
		return &AnswerResult{Answer: greetingAnswer}, nil
	case intent.IntentOffTopic:
		return &AnswerResult{Answer: offTopicAnswer}, nil
	case intent.IntentUnknown:
		return &AnswerResult{Answer: unknownAnswer}, nil
	}

	results, err := e.retrieve(ctx, question, e.opts.TopK, routed.Topic())
	if err != nil {
		return nil, err
	}

	approved, rejected := e.partition(results)
	log.Printf("engine: %d of %d fragments cleared the relevance threshold", len(approved.items), len(results))

	if len(approved.items) == 0 {
		// Forced fallback: a designed outcome, not an error. The rejected
		// fragments are returned for operator diagnostics only.
		return &AnswerResult{Answer: fallbackAnswer, Evidence: rejected.items}, nil
	}

	answer, err := e.generate(ctx, question, approved.contents, history)
	if err != nil {
		return nil, err
	}

	return &AnswerResult{Answer: answer, Evidence: approved.items}, nil
}

// retrieve embeds the question in query mode and runs the topic-filtered
// similarity search.
func (e *Engine) retrieve(ctx context.Context, question string, k int, topic string) ([]vectordb.Result, error) {
	vecs, err := e.embedder.Embed(ctx, []string{question}, embeddings.InputQuery)
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 {
		return nil, &embeddings.ServiceError{Provider: e.embedder.Name(), Err: fmt.Errorf("no vector returned for query")}
	}
	return e.store.Query(ctx, vecs[0], k, topic)
}

// partitioned carries evidence items alongside the chunk texts that were
// approved for the generation context.
type partitioned struct {
	items    []EvidenceItem
	contents []string
}

// partition splits retrieval results by the relevance threshold on
// similarity. Approved and rejected fragments carry the same item shape;
// only approved chunk texts become generation context.
func (e *Engine) partition(results []vectordb.Result) (approved, rejected partitioned) {
	for _, r := range results {
		item := EvidenceItem{
			Text:  snippet(r.Document.Content),
			Score: round2(float64(r.Similarity)),
			Title: r.Document.Metadata.Title,
			Page:  r.Document.Metadata.Page,
		}
		if float64(r.Similarity) >= e.opts.MinSimilarity {
			approved.items = append(approved.items, item)
			approved.contents = append(approved.contents, r.Document.Content)
		} else {
			rejected.items = append(rejected.items, item)
		}
	}
	return approved, rejected
}

// generate calls the generation service with the fixed system instruction,
// the approved evidence as context, the bounded history and the question.
func (e *Engine) generate(ctx context.Context, question string, contexts []string, history []Turn) (string, error) {
	system := fmt.Sprintf(systemPromptTemplate, strings.Join(contexts, "\n\n"))

	messages := []llm.Message{{Role: llm.RoleSystem, Content: system}}
	messages = append(messages, historyMessages(WindowTurns(history, e.opts.HistoryTurns))...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: question})

	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Model:       e.opts.Model,
		Messages:    messages,
		MaxTokens:   2048,
		Temperature: 0,
	})
	if err != nil {
		return "", &llm.GenerationError{Err: err}
	}
	return strings.TrimSpace(resp.Content), nil
}

// snippet truncates content to the evidence preview length.
func snippet(content string) string {
	runes := []rune(content)
	if len(runes) <= snippetLength {
		return content
	}
	return string(runes[:snippetLength]) + "..."
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
