package engine

import "errors"

// ErrEmptyQuestion is returned when a request carries a blank question.
// It is rejected before any external call is made.
var ErrEmptyQuestion = errors.New("question is empty")

// Turn is one prior message of the conversation.
type Turn struct {
	Role    string // "user" or "assistant"
	Content string
}

// EvidenceItem is one retrieved fragment backing (or failing to back) an
// answer. Score is similarity in [0,1], higher means closer, rounded for
// display.
type EvidenceItem struct {
	Text  string
	Score float64
	Title string
	Page  int
}

// AnswerResult is the outcome of an Ask request: the answer text plus the
// evidence it is grounded on. Short-circuited and forced-fallback answers
// carry canned text; fallback evidence is diagnostic only.
type AnswerResult struct {
	Answer   string
	Evidence []EvidenceItem
}

// SearchResult is one hit of the reduced-feature search mode.
type SearchResult struct {
	DocumentID string
	Title      string
	Snippet    string
	Score      float64
	Grounded   bool
}
