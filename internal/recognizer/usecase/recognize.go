package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"nlu-router/internal/model"
	"nlu-router/internal/recognizer"
)

// Recognize loads the conversation context for turn, processes its text and saves the
// merged context when entities changed it. Store failures never fail the turn.
func (uc *implUseCase) Recognize(ctx context.Context, turn model.Turn) (recognizer.Recognition, error) {
	text := turn.Text()
	if text == "" {
		uc.metrics.RecognitionsTotal.WithLabelValues("no_text").Inc()
		return recognizer.Recognition{Result: recognizer.NeutralResult()}, nil
	}

	key := turn.Address.Key()
	ctx, span := uc.tracer.Start(ctx, "recognizer.recognize",
		trace.WithAttributes(attribute.String("conversation", key)),
	)
	defer span.End()

	out := recognizer.Recognition{}
	convCtx, loadErr := uc.repo.GetContext(ctx, key)
	if loadErr != nil {
		uc.l.Warnf(ctx, "%s: load context %s: %v", recognizer.LogPrefixRecognize, key, loadErr)
		uc.metrics.ContextLoadFallbacks.Inc()
		convCtx = recognizer.Context{}
		out.Persistence = recognizer.PersistenceSkipped
		out.LoadErr = loadErr
	} else {
		if convCtx == nil {
			convCtx = recognizer.Context{}
		}
		convCtx = convCtx.Clone()
		convCtx[recognizer.KeyDialogID] = DialogID(turn)
	}

	res, merge, err := uc.Process(ctx, convCtx, turn.TextLocale(), text)
	if err != nil {
		uc.l.Errorf(ctx, "%s: %v", recognizer.LogPrefixRecognize, err)
		span.SetStatus(codes.Error, err.Error())
		uc.metrics.RecognitionsTotal.WithLabelValues("unavailable").Inc()
		return recognizer.Recognition{}, fmt.Errorf("%w: %w", recognizer.ErrRecognitionUnavailable, err)
	}
	out.Result = res

	if res.Recognized(uc.threshold) {
		uc.metrics.RecognitionsTotal.WithLabelValues("recognized").Inc()
	} else {
		uc.metrics.RecognitionsTotal.WithLabelValues("rejected").Inc()
	}

	if loadErr == nil && merge.Modified {
		if err := uc.repo.SetContext(ctx, key, merge.Context.Persistable()); err != nil {
			uc.l.Warnf(ctx, "%s: save context %s: %v", recognizer.LogPrefixRecognize, key, err)
			out.Persistence = recognizer.PersistenceFailed
			out.PersistErr = err
		} else {
			out.Persistence = recognizer.PersistenceSaved
		}
	}

	span.SetAttributes(attribute.String("persistence", out.Persistence.String()))
	uc.metrics.PersistenceTotal.WithLabelValues(out.Persistence.String()).Inc()
	return out, nil
}
