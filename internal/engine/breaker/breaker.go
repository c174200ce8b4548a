// Package breaker guards a recognition engine with a circuit breaker.
package breaker

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"nlu-router/internal/engine"
	"nlu-router/internal/engine/corpus"
	"nlu-router/internal/recognizer"
	"nlu-router/pkg/log"
	"nlu-router/pkg/metrics"
)

const LogPrefix = "internal.engine.breaker"

// Defaults
const (
	DefaultMaxRequests  = 3
	DefaultInterval     = time.Minute
	DefaultTimeout      = 30 * time.Second
	DefaultMinRequests  = 3
	DefaultFailureRatio = 0.6
)

// Options configures the breaker.
type Options struct {
	// Name labels metrics and logs, usually the engine kind.
	Name string
	// MaxRequests allowed through while half-open.
	MaxRequests uint32
	// Interval clears the closed-state counts; 0 never clears.
	Interval time.Duration
	// Timeout is how long the breaker stays open.
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

func (o Options) withDefaults() Options {
	if o.MaxRequests == 0 {
		o.MaxRequests = DefaultMaxRequests
	}
	if o.Interval == 0 {
		o.Interval = DefaultInterval
	}
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MinRequests == 0 {
		o.MinRequests = DefaultMinRequests
	}
	if o.FailureRatio == 0 {
		o.FailureRatio = DefaultFailureRatio
	}
	return o
}

// Engine wraps another engine. While the circuit is open Process fails fast
// with gobreaker.ErrOpenState.
type Engine struct {
	next    recognizer.Engine
	cb      *gobreaker.CircuitBreaker
	name    string
	metrics *metrics.Metrics
}

var _ recognizer.Engine = (*Engine)(nil)

// New wraps next.
func New(next recognizer.Engine, l log.Logger, opts Options) *Engine {
	opts = opts.withDefaults()
	m := metrics.Get()

	e := &Engine{next: next, name: opts.Name, metrics: m}
	e.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        opts.Name,
		MaxRequests: opts.MaxRequests,
		Interval:    opts.Interval,
		Timeout:     opts.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= opts.MinRequests && failureRatio >= opts.FailureRatio
		},
		IsSuccessful: isSuccessful,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			l.Warnf(context.Background(), "%s: circuit breaker %s changed from %s to %s", LogPrefix, name, from, to)
			m.EngineBreakerState.WithLabelValues(name).Set(float64(to))
		},
	})
	m.EngineBreakerState.WithLabelValues(opts.Name).Set(float64(gobreaker.StateClosed))
	return e
}

// Process runs the wrapped engine through the breaker.
// Context cancellation is not counted as an engine failure.
func (e *Engine) Process(ctx context.Context, req recognizer.EngineRequest) (recognizer.Result, error) {
	start := time.Now()
	defer func() {
		e.metrics.EngineDuration.WithLabelValues(e.name).Observe(time.Since(start).Seconds())
	}()

	var res recognizer.Result
	var cancelErr error
	_, err := e.cb.Execute(func() (interface{}, error) {
		var err error
		res, err = e.next.Process(ctx, req)
		if err != nil && ctx.Err() != nil {
			cancelErr = err
			return nil, nil
		}
		return nil, err
	})
	if cancelErr != nil {
		return recognizer.Result{}, cancelErr
	}
	if err != nil {
		return recognizer.Result{}, err
	}
	return res, nil
}

// isSuccessful keeps caller-input errors out of the failure counts; they say
// nothing about the health of the engine.
func isSuccessful(err error) bool {
	return err == nil ||
		errors.Is(err, corpus.ErrUnknownLocale) ||
		errors.Is(err, engine.ErrNotTrained)
}

// State reports the current circuit state.
func (e *Engine) State() gobreaker.State {
	return e.cb.State()
}
