package recognizer

import "maps"

// Entity is a named value extracted from an utterance and resolved to an option.
type Entity struct {
	Entity     string  `json:"entity"`
	Option     any     `json:"option"`
	SourceText string  `json:"sourceText,omitempty"`
	Accuracy   float64 `json:"accuracy,omitempty"`
}

// Classification is one ranked intent candidate.
type Classification struct {
	Intent string  `json:"intent"`
	Score  float64 `json:"score"`
}

// Result is the outcome of recognizing one utterance.
// Answer is non-empty only for accepted turns.
type Result struct {
	Utterance       string           `json:"utterance,omitempty"`
	Locale          string           `json:"locale,omitempty"`
	Intent          string           `json:"intent"`
	Score           float64          `json:"score"`
	Classifications []Classification `json:"classifications,omitempty"`
	Entities        []Entity         `json:"entities,omitempty"`
	Answer          string           `json:"answer,omitempty"`
}

// NeutralResult is reported for turns that carry no text.
func NeutralResult() Result {
	return Result{Intent: IntentNone, Score: 0}
}

// Recognized reports whether the result passes threshold with a real intent.
func (r Result) Recognized(threshold float64) bool {
	return r.Score >= threshold && r.Intent != IntentNone
}

// Context is the per-conversation key/value state carried across turns.
type Context map[string]any

// Clone returns a shallow copy; a nil receiver yields an empty context.
func (c Context) Clone() Context {
	out := make(Context, len(c))
	maps.Copy(out, c)
	return out
}

// Persistable returns a copy without transient keys.
func (c Context) Persistable() Context {
	out := c.Clone()
	delete(out, KeyModified)
	return out
}

// DialogID returns the stamped dialog id, or "".
func (c Context) DialogID() string {
	id, _ := c[KeyDialogID].(string)
	return id
}

// Merge is the context produced by processing an utterance.
type Merge struct {
	Context  Context
	Modified bool
}

// Persistence describes what happened to the context after recognition.
type Persistence int

const (
	// PersistenceNotRequired: nothing changed, no save attempted.
	PersistenceNotRequired Persistence = iota
	// PersistenceSaved: the merged context was written.
	PersistenceSaved
	// PersistenceFailed: the result was delivered but the context was not persisted.
	PersistenceFailed
	// PersistenceSkipped: the context could not be loaded, so no save was attempted.
	PersistenceSkipped
)

func (p Persistence) String() string {
	switch p {
	case PersistenceNotRequired:
		return "not_required"
	case PersistenceSaved:
		return "saved"
	case PersistenceFailed:
		return "failed"
	case PersistenceSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Recognition is what Recognize delivers for a turn.
type Recognition struct {
	Result      Result
	Persistence Persistence
	PersistErr  error // set when Persistence == PersistenceFailed
	LoadErr     error // set when Persistence == PersistenceSkipped
}

// EngineRequest is the input handed to a RecognitionEngine.
// An empty Locale asks the engine to use its default locale.
type EngineRequest struct {
	Locale    string
	Utterance string
	Context   Context
}
