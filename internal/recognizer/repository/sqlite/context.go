package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nlu-router/internal/recognizer"
	"nlu-router/internal/recognizer/repository"
)

func (r *implRepository) GetContext(ctx context.Context, key string) (recognizer.Context, error) {
	if key == "" {
		return nil, repository.ErrEmptyKey
	}

	var (
		data      string
		updatedAt int64
	)
	err := r.db.QueryRowContext(ctx, selectContextQuery, key).Scan(&data, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return recognizer.Context{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "sqlite.GetContext: key=%s: %v", key, err)
		return nil, fmt.Errorf("%w: %v", repository.ErrFailedToGet, err)
	}

	if r.expired(updatedAt) {
		if _, err := r.db.ExecContext(ctx, deleteContextQuery, key); err != nil {
			r.l.Warnf(ctx, "sqlite.GetContext: purge expired key=%s: %v", key, err)
		}
		return recognizer.Context{}, nil
	}

	c := recognizer.Context{}
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		r.l.Errorf(ctx, "sqlite.GetContext: decode key=%s: %v", key, err)
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

	if _, err := r.db.ExecContext(ctx, upsertContextQuery, key, string(data), r.now().UnixNano()); err != nil {
		r.l.Errorf(ctx, "sqlite.SetContext: key=%s: %v", key, err)
		return fmt.Errorf("%w: %v", repository.ErrFailedToSave, err)
	}
	return nil
}

func (r *implRepository) expired(updatedAt int64) bool {
	if r.opt.TTL <= 0 {
		return false
	}
	return r.now().Sub(time.Unix(0, updatedAt)) > r.opt.TTL
}

func (r *implRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *implRepository) Close() error {
	return r.db.Close()
}
