package repository

import (
	"context"

	"nlu-router/internal/recognizer"
)

// Repository is the composed interface for conversation context storage.
type Repository interface {
	ContextRepository
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
	Close() error
}

// ContextRepository persists one context per conversation key.
type ContextRepository interface {
	// GetContext returns the stored context, or an empty non-nil context when none exists.
	GetContext(ctx context.Context, key string) (recognizer.Context, error)

	// SetContext replaces the stored context. Transient keys are never written.
	SetContext(ctx context.Context, key string, c recognizer.Context) error
}
