package usecase

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"nlu-router/internal/recognizer"
	"nlu-router/internal/recognizer/repository"
	"nlu-router/pkg/log"
	"nlu-router/pkg/metrics"
)

const tracerName = "nlu-router/recognizer"

// implUseCase is the private implementation of recognizer.UseCase.
type implUseCase struct {
	engine    recognizer.Engine
	repo      repository.ContextRepository
	threshold float64
	l         log.Logger
	tracer    trace.Tracer
	metrics   *metrics.Metrics
}

var _ recognizer.UseCase = (*implUseCase)(nil)

// New creates the recognition pipeline. The engine and repository are required.
func New(engine recognizer.Engine, repo repository.ContextRepository, l log.Logger, threshold float64) (*implUseCase, error) {
	if engine == nil {
		return nil, recognizer.ErrNilEngine
	}
	if repo == nil {
		return nil, recognizer.ErrNilRepository
	}
	if threshold < 0 || threshold > 1 {
		return nil, recognizer.ErrInvalidThreshold
	}

	return &implUseCase{
		engine:    engine,
		repo:      repo,
		threshold: threshold,
		l:         l,
		tracer:    otel.Tracer(tracerName),
		metrics:   metrics.Get(),
	}, nil
}

func (uc *implUseCase) Threshold() float64 {
	return uc.threshold
}
