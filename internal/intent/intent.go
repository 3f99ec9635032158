// Package intent classifies incoming questions to scope retrieval and
// short-circuit greetings and off-topic requests.
package intent

import "fmt"

// Intent is the routed category of a question.
type Intent string

const (
	IntentHypertension Intent = "HTA"
	IntentDiabetes     Intent = "DIABETES"
	IntentGreeting     Intent = "SALUDO"
	IntentOffTopic     Intent = "OTRO"
	IntentUnknown      Intent = "DESCONOCIDA"
)

// Topic returns the vector index topic tag for this intent, or "" for
// intents that never reach retrieval.
func (i Intent) Topic() string {
	switch i {
	case IntentHypertension, IntentDiabetes:
		return string(i)
	default:
		return ""
	}
}

// Retrievable reports whether the intent triggers a vector index query.
func (i Intent) Retrievable() bool { return i.Topic() != "" }

// ServiceError reports a failure of the classification service call.
type ServiceError struct {
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("intent service: %v", e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }
