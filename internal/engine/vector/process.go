package vector

import (
	"context"
	"fmt"

	"nlu-router/internal/engine"
	"nlu-router/internal/recognizer"
	"nlu-router/pkg/qdrant"
	"nlu-router/pkg/voyage"
)

// Process takes the intent of the most similar training utterance.
func (e *Engine) Process(ctx context.Context, req recognizer.EngineRequest) (recognizer.Result, error) {
	e.mu.RLock()
	c, x, trained := e.corpus, e.extractor, e.trained
	e.mu.RUnlock()
	if !trained {
		return recognizer.Result{}, engine.ErrNotTrained
	}

	locale, _, err := c.Locale(req.Locale)
	if err != nil {
		return recognizer.Result{}, fmt.Errorf("%s: %w", LogPrefixProcess, err)
	}

	vecs, err := e.embedder.Embed(ctx, []string{req.Utterance}, voyage.InputTypeQuery)
	if err != nil {
		return recognizer.Result{}, fmt.Errorf("%s: embed: %w", LogPrefixProcess, err)
	}
	if len(vecs) != 1 {
		return recognizer.Result{}, fmt.Errorf("%s: embed: got %d vectors", LogPrefixProcess, len(vecs))
	}

	resp, err := e.store.SearchPoints(ctx, e.opts.Collection, qdrant.SearchRequest{
		Vector:      vecs[0],
		Limit:       e.opts.TopK,
		WithPayload: true,
		Filter:      qdrant.FieldEquals(PayloadLocale, locale),
	})
	if err != nil {
		return recognizer.Result{}, fmt.Errorf("%s: search: %w", LogPrefixProcess, err)
	}

	res := recognizer.Result{
		Utterance:       req.Utterance,
		Locale:          locale,
		Intent:          recognizer.IntentNone,
		Entities:        x.Extract(locale, req.Utterance),
		Classifications: classify(resp.Result),
	}
	if len(res.Classifications) > 0 {
		best := res.Classifications[0]
		res.Intent = best.Intent
		res.Score = best.Score
		res.Answer = c.Answer(locale, best.Intent)
	}
	return res, nil
}

// classify keeps the best hit per intent, in descending score order.
// Qdrant returns hits sorted by score.
func classify(hits []qdrant.ScoredPoint) []recognizer.Classification {
	seen := map[string]bool{}
	var out []recognizer.Classification
	for _, h := range hits {
		intent, _ := h.Payload[PayloadIntent].(string)
		if intent == "" || seen[intent] {
			continue
		}
		seen[intent] = true
		out = append(out, recognizer.Classification{
			Intent: intent,
			Score:  min(max(h.Score, 0), 1),
		})
	}
	return out
}
