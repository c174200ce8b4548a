package engine

import "errors"

var (
	// ErrNotTrained is returned by Process before a corpus was loaded and trained.
	ErrNotTrained = errors.New("engine: model is not trained")
	// ErrNoModelPath is returned by Import when there is nowhere to save the model.
	ErrNoModelPath = errors.New("engine: model path is not set")
)
