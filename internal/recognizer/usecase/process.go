package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"nlu-router/internal/recognizer"
)

// Process runs the engine and, for accepted turns, merges entities into a copy of convCtx.
func (uc *implUseCase) Process(ctx context.Context, convCtx recognizer.Context, locale, utterance string) (recognizer.Result, recognizer.Merge, error) {
	if convCtx == nil {
		return recognizer.Result{}, recognizer.Merge{}, recognizer.ErrNilContext
	}
	if utterance == "" {
		return recognizer.Result{}, recognizer.Merge{}, recognizer.ErrEmptyUtterance
	}

	ctx, span := uc.tracer.Start(ctx, "recognizer.process",
		trace.WithAttributes(attribute.String("locale", locale)),
	)
	defer span.End()

	res, err := uc.engine.Process(ctx, recognizer.EngineRequest{
		Locale:    locale,
		Utterance: utterance,
		Context:   convCtx.Clone(),
	})
	if err != nil {
		span.RecordError(err)
		return recognizer.Result{}, recognizer.Merge{}, fmt.Errorf("%s: %w", recognizer.LogPrefixProcess, err)
	}

	span.SetAttributes(
		attribute.String("intent", res.Intent),
		attribute.Float64("score", res.Score),
	)

	if !res.Recognized(uc.threshold) {
		res.Answer = ""
		return res, recognizer.Merge{Context: convCtx.Clone()}, nil
	}

	merged := convCtx.Clone()
	for _, e := range res.Entities {
		merged[e.Entity] = e.Option
	}

	return res, recognizer.Merge{Context: merged, Modified: len(res.Entities) > 0}, nil
}
