package engine

import "github.com/clinassist/clinrag/internal/llm"

// WindowTurns keeps only the most recent capacity turns, preserving their
// relative order. Empty input yields empty output.
func WindowTurns(turns []Turn, capacity int) []Turn {
	if capacity <= 0 || len(turns) == 0 {
		return nil
	}
	if len(turns) > capacity {
		turns = turns[len(turns)-capacity:]
	}
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out
}

// historyMessages converts windowed turns to the generation service's
// message format. Turns with unrecognized roles are dropped.
func historyMessages(turns []Turn) []llm.Message {
	var msgs []llm.Message
	for _, t := range turns {
		switch t.Role {
		case "user":
			msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: t.Content})
		case "assistant":
			msgs = append(msgs, llm.Message{Role: llm.RoleAssistant, Content: t.Content})
		}
	}
	return msgs
}
