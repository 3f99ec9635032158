package intent

import (
	"context"
	"strings"

	"github.com/clinassist/clinrag/internal/llm"
)

// routerSystemPrompt constrains the model to answer with exactly one of the
// four category labels.
const routerSystemPrompt = "Eres un sistema de clasificación de intenciones para un asistente clínico. " +
	"Tu ÚNICO trabajo es analizar la pregunta del usuario y clasificarla en una de estas 4 categorías:\n" +
	"1. 'HTA': Si la pregunta está relacionada con Hipertensión Arterial, HTA, o recomendaciones de la guía clínica de hipertensión arterial.\n" +
	"2. 'DIABETES': Si la pregunta está relacionada con la Diabetes Mellitus Tipo 2, Diabetes, DMT2, o recomendaciones de la guía clínica de Diabetes Mellitus Tipo 2.\n" +
	"3. 'SALUDO': Si el usuario solo está saludando (ej: 'Hola', 'Buenos días', 'Gracias').\n" +
	"4. 'OTRO': Si la pregunta es sobre cualquier otro tema no médico (ej: deportes, cocina, programación, clima).\n" +
	"\n" +
	"Responde EXCLUSIVAMENTE con una de esas cuatro palabras: 'HTA', 'DIABETES', 'SALUDO' u 'OTRO'. No digas nada más."

// Router classifies questions with a single constrained-label LLM call.
type Router struct {
	provider llm.Provider
	model    string
}

// NewRouter creates a router backed by the given provider and model.
func NewRouter(provider llm.Provider, model string) *Router {
	return &Router{provider: provider, model: model}
}

// Classify routes a question into an Intent. A service failure is surfaced
// as *ServiceError; an unrecognized label resolves to IntentUnknown.
func (r *Router) Classify(ctx context.Context, question string) (Intent, error) {
	resp, err := r.provider.Complete(ctx, llm.CompletionRequest{
		Model: r.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: routerSystemPrompt},
			{Role: llm.RoleUser, Content: question},
		},
		MaxTokens:   16,
		Temperature: 0,
	})
	if err != nil {
		return IntentUnknown, &ServiceError{Err: err}
	}
	return ParseLabel(resp.Content), nil
}

// ParseLabel resolves a raw classifier reply to an Intent by substring
// containment, in priority order. A reply containing several label tokens
// resolves to the highest-priority match; anything else is IntentUnknown.
func ParseLabel(raw string) Intent {
	label := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case strings.Contains(label, string(IntentHypertension)):
		return IntentHypertension
	case strings.Contains(label, string(IntentDiabetes)):
		return IntentDiabetes
	case strings.Contains(label, string(IntentGreeting)):
		return IntentGreeting
	case strings.Contains(label, string(IntentOffTopic)):
		return IntentOffTopic
	default:
		return IntentUnknown
	}
}
