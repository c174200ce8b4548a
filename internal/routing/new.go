package routing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"nlu-router/internal/recognizer"
	"nlu-router/pkg/log"
	"nlu-router/pkg/metrics"
)

const tracerName = "nlu-router/routing"

// Decider routes turns the host cannot route on its own using recognizer answers.
type Decider struct {
	uc      recognizer.UseCase
	hooks   Hooks
	l       log.Logger
	tracer  trace.Tracer
	metrics *metrics.Metrics
}

func New(uc recognizer.UseCase, hooks Hooks, l log.Logger) *Decider {
	return &Decider{
		uc:      uc,
		hooks:   hooks,
		l:       l,
		tracer:  otel.Tracer(tracerName),
		metrics: metrics.Get(),
	}
}
