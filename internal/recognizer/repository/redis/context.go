package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"nlu-router/internal/recognizer"
	"nlu-router/internal/recognizer/repository"
)

func (r *implRepository) GetContext(ctx context.Context, key string) (recognizer.Context, error) {
	if key == "" {
		return nil, repository.ErrEmptyKey
	}

	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return recognizer.Context{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "redis.GetContext: key=%s: %v", key, err)
		return nil, fmt.Errorf("%w: %v", repository.ErrFailedToGet, err)
	}

	c := recognizer.Context{}
	if err := json.Unmarshal(data, &c); err != nil {
		r.l.Errorf(ctx, "redis.GetContext: decode key=%s: %v", key, err)
		return nil, fmt.Errorf("%w: %v", repository.ErrFailedToDecode, err)
	}
	return c, nil
}

func (r *implRepository) SetContext(ctx context.Context, key string, c recognizer.Context) error {
	if key == "" {
		return repository.ErrEmptyKey
	}

	data, err := json.Marshal(c.Persistable())
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrFailedToSave, err)
	}

	if err := r.client.Set(ctx, r.key(key), data, r.opt.TTL).Err(); err != nil {
		r.l.Errorf(ctx, "redis.SetContext: key=%s: %v", key, err)
		return fmt.Errorf("%w: %v", repository.ErrFailedToSave, err)
	}
	return nil
}

func (r *implRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *implRepository) Close() error {
	return r.client.Close()
}
