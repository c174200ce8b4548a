package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"nlu-router/pkg/log"
)

const (
	tracerName   = "nlu-router/llmprovider"
	logPrefixGen = "pkg.llmprovider.Manager.GenerateContent"
)

// Manager tries providers in priority order, retrying each with backoff.
type Manager struct {
	providers []Provider
	config    Config
	logger    log.Logger
	tracer    trace.Tracer
}

// Config defines configuration for the Provider Manager
type Config struct {
	FallbackEnabled bool
	// RetryAttempts per provider; values below 1 mean a single attempt.
	RetryAttempts int
	// RetryDelay is the first backoff; it doubles on each retry.
	RetryDelay time.Duration
	// MaxTotalTimeout bounds the whole fallback chain.
	MaxTotalTimeout time.Duration
}

// NewManager creates a new Provider Manager with the given providers, config, and logger
func NewManager(providers []Provider, config *Config, logger log.Logger) *Manager {
	m := &Manager{
		providers: providers,
		logger:    logger,
		tracer:    otel.Tracer(tracerName),
	}
	if config != nil {
		m.config = *config
	}
	if m.config.RetryAttempts < 1 {
		m.config.RetryAttempts = 1
	}
	return m
}

// GenerateContent asks each provider in turn until one answers. Cancellation of ctx
// stops the chain immediately and is returned unwrapped.
func (m *Manager) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if len(m.providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	ctx, span := m.tracer.Start(ctx, "llmprovider.generate")
	defer span.End()

	if m.config.MaxTotalTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.config.MaxTotalTimeout)
		defer cancel()
	}

	var lastErr error
	for _, provider := range m.providers {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("%s: %w", logPrefixGen, err)
		}

		resp, err := m.generateWithRetry(ctx, provider, req)
		if err == nil {
			span.SetAttributes(
				attribute.String("llm.provider", provider.Name()),
				attribute.String("llm.model", provider.Model()),
			)
			m.logger.Debugf(ctx, "%s: %s/%s ok, tokens in=%d out=%d", logPrefixGen,
				provider.Name(), provider.Model(), resp.Usage.InputTokens, resp.Usage.OutputTokens)
			return resp, nil
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			span.RecordError(err)
			return nil, fmt.Errorf("%s: %w", logPrefixGen, err)
		}

		m.logger.Warnf(ctx, "%s: %v", logPrefixGen, err)
		lastErr = err
		if !m.config.FallbackEnabled {
			break
		}
	}

	span.RecordError(lastErr)
	return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, lastErr)
}

func (m *Manager) generateWithRetry(ctx context.Context, provider Provider, req *Request) (*Response, error) {
	var lastErr error
	delay := m.config.RetryDelay

	for attempt := 1; attempt <= m.config.RetryAttempts; attempt++ {
		if attempt > 1 && delay > 0 {
			t := time.NewTimer(delay)
			select {
			case <-t.C:
			case <-ctx.Done():
				t.Stop()
				return nil, ctx.Err()
			}
			delay *= 2
		}

		resp, err := provider.GenerateContent(ctx, req)
		if err == nil {
			return resp, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
	}

	return nil, &ProviderError{Provider: provider.Name(), Attempts: m.config.RetryAttempts, Err: lastErr}
}
