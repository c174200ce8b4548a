package memory

import (
	"context"

	"nlu-router/internal/recognizer"
	"nlu-router/internal/recognizer/repository"
)

// GetContext returns a copy of the stored context so callers never alias cached state.
func (r *implRepository) GetContext(ctx context.Context, key string) (recognizer.Context, error) {
	if key == "" {
		return nil, repository.ErrEmptyKey
	}
	c, ok := r.cache.Get(key)
	if !ok {
		return recognizer.Context{}, nil
	}
	return c.Clone(), nil
}

func (r *implRepository) SetContext(ctx context.Context, key string, c recognizer.Context) error {
	if key == "" {
		return repository.ErrEmptyKey
	}
	r.cache.Add(key, c.Persistable())
	r.l.Debugf(ctx, "memory.SetContext: stored %d keys for %s", len(c), key)
	return nil
}

func (r *implRepository) Ping(ctx context.Context) error {
	return nil
}

func (r *implRepository) Close() error {
	r.cache.Purge()
	return nil
}
