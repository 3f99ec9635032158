package engine

import (
	"fmt"
	"testing"

	"github.com/clinassist/clinrag/internal/llm"
)

func TestWindowTurnsKeepsLastN(t *testing.T) {
	var turns []Turn
	for i := 0; i < 10; i++ {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		turns = append(turns, Turn{Role: role, Content: fmt.Sprintf("turno %d", i)})
	}

	got := WindowTurns(turns, 6)
	if len(got) != 6 {
		t.Fatalf("got %d turns, want 6", len(got))
	}
	for i, turn := range got {
		want := fmt.Sprintf("turno %d", i+4)
		if turn.Content != want {
			t.Errorf("turn %d: got %q, want %q", i, turn.Content, want)
		}
	}
}

func TestWindowTurnsShortHistory(t *testing.T) {
	turns := []Turn{{Role: "user", Content: "hola"}}
	got := WindowTurns(turns, 6)
	if len(got) != 1 || got[0].Content != "hola" {
		t.Errorf("short history should pass through, got %#v", got)
	}
}

func TestWindowTurnsEmpty(t *testing.T) {
	if got := WindowTurns(nil, 6); len(got) != 0 {
		t.Errorf("expected empty output, got %#v", got)
	}
	if got := WindowTurns([]Turn{{Role: "user", Content: "x"}}, 0); len(got) != 0 {
		t.Errorf("zero capacity should yield empty output, got %#v", got)
	}
}

func TestHistoryMessagesRoleMapping(t *testing.T) {
	turns := []Turn{
		{Role: "user", Content: "pregunta"},
		{Role: "assistant", Content: "respuesta"},
		{Role: "system", Content: "ignorado"},
	}

	msgs := historyMessages(turns)
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != llm.RoleUser || msgs[0].Content != "pregunta" {
		t.Errorf("unexpected first message: %+v", msgs[0])
	}
	if msgs[1].Role != llm.RoleAssistant || msgs[1].Content != "respuesta" {
		t.Errorf("unexpected second message: %+v", msgs[1])
	}
}
