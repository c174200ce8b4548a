// Package engine holds the recognition engines behind recognizer.Engine.
package engine

import "nlu-router/internal/recognizer"

// Engine kinds accepted in configuration.
const (
	KindLLM    = "llm"
	KindVector = "vector"
)

// Model is a trainable recognition engine.
type Model interface {
	recognizer.Engine
	recognizer.Trainer
}
