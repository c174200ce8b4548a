package recognizer

import (
	"context"

	"nlu-router/internal/model"
)

// Engine is the statistical/NLP recognizer consumed by this domain.
// Implementations must treat req.Context as read-only.
type Engine interface {
	Process(ctx context.Context, req EngineRequest) (Result, error)
}

// Trainer manages the model behind an Engine.
type Trainer interface {
	Train(ctx context.Context) error
	Load(ctx context.Context, filename string) error
	Save(ctx context.Context, filename string) error
	// Import reads a corpus file, trains, and saves the model to the current model path.
	Import(ctx context.Context, filename string) error
}

// UseCase is the recognition pipeline.
type UseCase interface {
	// Process recognizes an utterance against convCtx and returns the merged context.
	// convCtx is never mutated.
	Process(ctx context.Context, convCtx Context, locale, utterance string) (Result, Merge, error)

	// Recognize runs load → process → optional save for a turn.
	Recognize(ctx context.Context, turn model.Turn) (Recognition, error)

	// Threshold returns the acceptance threshold.
	Threshold() float64
}
