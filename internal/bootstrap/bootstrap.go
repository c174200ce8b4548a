// Package bootstrap builds the components shared by the API server and the CLI from config.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"nlu-router/config"
	"nlu-router/internal/engine"
	"nlu-router/internal/engine/breaker"
	"nlu-router/internal/engine/llm"
	"nlu-router/internal/engine/vector"
	"nlu-router/internal/recognizer"
	"nlu-router/internal/recognizer/repository"
	"nlu-router/internal/recognizer/repository/memory"
	"nlu-router/internal/recognizer/repository/redis"
	"nlu-router/internal/recognizer/repository/sqlite"
	"nlu-router/pkg/llmprovider"
	"nlu-router/pkg/log"
	"nlu-router/pkg/qdrant"
	"nlu-router/pkg/voyage"
)

// Logger builds the zap logger from config.
func Logger(cfg *config.Config) log.Logger {
	return log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})
}

// Engine is a trainable model plus the engine the recognizer should call,
// which is the model behind a circuit breaker when one is configured.
type Engine struct {
	Model engine.Model
	Guard recognizer.Engine
}

// NewEngine builds the configured recognition engine. The model is untrained.
func NewEngine(cfg *config.Config, l log.Logger) (*Engine, error) {
	var m engine.Model
	switch cfg.Engine.Kind {
	case config.EngineLLM:
		mgr, err := newLLMManager(&cfg.LLM, l)
		if err != nil {
			return nil, err
		}
		m = llm.New(mgr, l, llm.Options{
			ModelPath:     cfg.Engine.ModelPath,
			DefaultLocale: cfg.Recognizer.DefaultLocale,
		})
	case config.EngineVector:
		emb, err := voyage.New(voyage.Config{APIKey: cfg.Voyage.APIKey, Model: cfg.Voyage.Model})
		if err != nil {
			return nil, err
		}
		store := qdrant.NewClient(qdrant.Config{BaseURL: cfg.Qdrant.URL, APIKey: cfg.Qdrant.APIKey})
		m = vector.New(emb, store, l, vector.Options{
			Collection:    cfg.Qdrant.CollectionName,
			ModelPath:     cfg.Engine.ModelPath,
			DefaultLocale: cfg.Recognizer.DefaultLocale,
		})
	default:
		return nil, fmt.Errorf("unknown engine kind %q", cfg.Engine.Kind)
	}

	e := &Engine{Model: m, Guard: m}
	if cfg.Engine.Breaker.Enabled {
		b := cfg.Engine.Breaker
		e.Guard = breaker.New(m, l, breaker.Options{
			Name:         cfg.Engine.Kind,
			MaxRequests:  b.MaxRequests,
			Interval:     b.Interval,
			Timeout:      b.Timeout,
			MinRequests:  b.MinRequests,
			FailureRatio: b.FailureRatio,
		})
	}
	return e, nil
}

func newLLMManager(cfg *config.LLMConfig, l log.Logger) (*llmprovider.Manager, error) {
	providers, err := llmprovider.InitializeProviders(cfg)
	if err != nil {
		return nil, err
	}
	retryDelay, err := parseDuration(cfg.RetryDelay, time.Second)
	if err != nil {
		return nil, fmt.Errorf("llm.retry_delay: %w", err)
	}
	maxTotal, err := parseDuration(cfg.MaxTotalTimeout, 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("llm.max_total_timeout: %w", err)
	}
	return llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.FallbackEnabled,
		RetryAttempts:   cfg.RetryAttempts,
		RetryDelay:      retryDelay,
		MaxTotalTimeout: maxTotal,
	}, l), nil
}

func parseDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}

// NewContextStore opens the configured conversation context store.
func NewContextStore(ctx context.Context, cfg *config.Config, l log.Logger) (repository.Repository, error) {
	opt := repository.Options{
		TTL:       cfg.ContextStore.TTL,
		Size:      cfg.ContextStore.Size,
		KeyPrefix: cfg.ContextStore.Redis.KeyPrefix,
	}
	switch cfg.ContextStore.Driver {
	case config.DriverMemory:
		return memory.New(opt, l), nil
	case config.DriverRedis:
		return redis.New(ctx, cfg.ContextStore.Redis.URL, opt, l)
	case config.DriverSQLite:
		return sqlite.New(ctx, cfg.ContextStore.SQLite.Path, opt, l)
	default:
		return nil, fmt.Errorf("unknown context store driver %q", cfg.ContextStore.Driver)
	}
}
