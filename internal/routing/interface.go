package routing

import "nlu-router/internal/dialog"

// Host is the chat host routing attaches to.
type Host interface {
	Name() string
	Recognizer(r dialog.IntentRecognizer)
	OnDisambiguateRoute(fn dialog.DisambiguateFunc)
}
