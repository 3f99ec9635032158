// Package chunker splits guideline text into overlapping retrieval fragments.
package chunker

import (
	"fmt"
)

// Default parameters used for ingesting clinical guideline documents.
// 1300/200 keeps whole recommendation paragraphs together while the overlap
// avoids cutting sentences across fragment boundaries.
const (
	DefaultSize    = 1300
	DefaultOverlap = 200
)

// Split divides text into ordered spans of at most size runes, with adjacent
// spans sharing overlap runes. Cut points prefer paragraph breaks, then line
// breaks, then spaces, and fall back to an arbitrary rune position. The output
// is deterministic for a given input and never contains empty spans.
func Split(text string, size, overlap int) ([]string, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("chunk overlap %d must be in [0, size)", overlap)
	}
	if text == "" {
		return nil, nil
	}

	runes := []rune(text)
	var spans []string

	start := 0
	for start < len(runes) {
		end := start + size
		if end >= len(runes) {
			spans = append(spans, string(runes[start:]))
			break
		}

		cut := findCut(runes, start, end)
		spans = append(spans, string(runes[start:cut]))

		next := cut - overlap
		if next <= start {
			// Overlap would stall the scan; advance without it.
			next = cut
		}
		start = next
	}

	return spans, nil
}

// findCut picks the cut position in (start, end], scanning backwards for the
// highest-priority separator. The cut lands just after the separator so the
// break itself stays with the preceding span.
func findCut(runes []rune, start, end int) int {
	// Paragraph boundary: "\n\n".
	for i := end - 1; i > start+1; i-- {
		if runes[i-1] == '\n' && runes[i-2] == '\n' {
			return i
		}
	}
	// Line break.
	for i := end - 1; i > start; i-- {
		if runes[i-1] == '\n' {
			return i
		}
	}
	// Space.
	for i := end - 1; i > start; i-- {
		if runes[i-1] == ' ' {
			return i
		}
	}
	return end
}
