package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/clinassist/clinrag/internal/llm"
)

// scriptedProvider returns a fixed reply or error for every completion.
type scriptedProvider struct {
	reply string
	err   error
}

func (p *scriptedProvider) Complete(context.Context, llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &llm.CompletionResponse{Content: p.reply}, nil
}

func (p *scriptedProvider) Name() string { return "scripted" }

func TestParseLabel(t *testing.T) {
	cases := []struct {
		raw  string
		want Intent
	}{
		{"HTA", IntentHypertension},
		{"  hta \n", IntentHypertension},
		{"DIABETES", IntentDiabetes},
		{"La categoría es 'DIABETES'.", IntentDiabetes},
		{"SALUDO", IntentGreeting},
		{"OTRO", IntentOffTopic},
		{"no tengo idea", IntentUnknown},
		{"", IntentUnknown},
	}
	for _, tc := range cases {
		if got := ParseLabel(tc.raw); got != tc.want {
			t.Errorf("ParseLabel(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}

func TestParseLabelPriority(t *testing.T) {
	// A reply containing several label tokens resolves deterministically
	// to the highest-priority one.
	got := ParseLabel("Podría ser HTA o DIABETES")
	if got != IntentHypertension {
		t.Errorf("got %s, want %s", got, IntentHypertension)
	}

	got = ParseLabel("DIABETES, aunque también es un SALUDO")
	if got != IntentDiabetes {
		t.Errorf("got %s, want %s", got, IntentDiabetes)
	}
}

func TestClassify(t *testing.T) {
	router := NewRouter(&scriptedProvider{reply: "SALUDO"}, "test-model")

	got, err := router.Classify(context.Background(), "Hola")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got != IntentGreeting {
		t.Errorf("got %s, want %s", got, IntentGreeting)
	}
}

func TestClassifyServiceFailure(t *testing.T) {
	router := NewRouter(&scriptedProvider{err: errors.New("quota exceeded")}, "test-model")

	got, err := router.Classify(context.Background(), "¿Cuál es la meta de presión arterial?")
	if got != IntentUnknown {
		t.Errorf("got intent %s, want %s", got, IntentUnknown)
	}

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("got %v, want *ServiceError", err)
	}
}

func TestTopic(t *testing.T) {
	if IntentHypertension.Topic() != "HTA" || IntentDiabetes.Topic() != "DIABETES" {
		t.Error("topic intents must map to their index tags")
	}
	for _, i := range []Intent{IntentGreeting, IntentOffTopic, IntentUnknown} {
		if i.Topic() != "" || i.Retrievable() {
			t.Errorf("%s must not be retrievable", i)
		}
	}
}
