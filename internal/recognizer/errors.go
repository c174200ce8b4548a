package recognizer

import "errors"

var (
	// ErrRecognitionUnavailable is returned when the recognition engine fails.
	ErrRecognitionUnavailable = errors.New("recognition unavailable")
	ErrEmptyUtterance         = errors.New("utterance is empty")
	ErrNilContext             = errors.New("conversation context is nil")
	ErrNilEngine              = errors.New("recognition engine is required")
	ErrNilRepository          = errors.New("context repository is required")
	ErrInvalidThreshold       = errors.New("threshold must be within [0, 1]")
)
