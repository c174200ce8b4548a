package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"nlu-router/internal/recognizer/repository"
	"nlu-router/pkg/log"
)

const pingTimeout = 5 * time.Second

type implRepository struct {
	client *redis.Client
	opt    repository.Options
	l      log.Logger
}

// New connects to the Redis server at url and verifies it with a PING.
func New(ctx context.Context, url string, opt repository.Options, l log.Logger) (repository.Repository, error) {
	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis.New: parse url: %w", err)
	}

	client := redis.NewClient(redisOpts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis.New: ping: %w", err)
	}

	l.Infof(ctx, "redis.New: connected to %s", redisOpts.Addr)
	return NewWithClient(client, opt, l), nil
}

// NewWithClient wraps an existing client. The store takes ownership of it.
func NewWithClient(client *redis.Client, opt repository.Options, l log.Logger) repository.Repository {
	return &implRepository{
		client: client,
		opt:    opt.WithDefaults(),
		l:      l,
	}
}

func (r *implRepository) key(k string) string {
	return r.opt.KeyPrefix + k
}
