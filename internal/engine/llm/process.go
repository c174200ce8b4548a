package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"nlu-router/internal/engine"
	"nlu-router/internal/recognizer"
	"nlu-router/pkg/llmprovider"
)

// Process asks the LLM for the intent of req.Utterance.
// Unusable answers degrade to None with score 0; provider failures are errors.
func (e *Engine) Process(ctx context.Context, req recognizer.EngineRequest) (recognizer.Result, error) {
	e.mu.RLock()
	c, x, prompts := e.corpus, e.extractor, e.prompts
	e.mu.RUnlock()
	if prompts == nil {
		return recognizer.Result{}, engine.ErrNotTrained
	}

	locale, l, err := c.Locale(req.Locale)
	if err != nil {
		return recognizer.Result{}, fmt.Errorf("%s: %w", LogPrefixProcess, err)
	}

	res := recognizer.Result{
		Utterance: req.Utterance,
		Locale:    locale,
		Intent:    recognizer.IntentNone,
		Entities:  x.Extract(locale, req.Utterance),
	}

	resp, err := e.gen.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: prompts[locale],
		Messages:          []llmprovider.Message{{Role: llmprovider.RoleUser, Text: req.Utterance}},
		Temperature:       Temperature,
		MaxTokens:         MaxTokens,
		JSONOutput:        true,
	})
	if err != nil {
		return recognizer.Result{}, fmt.Errorf("%s: %w", LogPrefixProcess, err)
	}
	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		e.l.Warnf(ctx, "%s: %s", LogPrefixProcess, WarnMsgEmptyResponse)
		return res, nil
	}

	var out classification
	if err := json.Unmarshal([]byte(stripFences(resp.Text)), &out); err != nil {
		e.l.Warnf(ctx, "%s: %s: %v", LogPrefixProcess, WarnMsgJSONParseFailed, err)
		return res, nil
	}
	if out.Intent == recognizer.IntentNone || out.Intent == "" {
		return res, nil
	}
	if _, ok := l.Intent(out.Intent); !ok {
		e.l.Warnf(ctx, "%s: %s: %q", LogPrefixProcess, WarnMsgUnknownIntent, out.Intent)
		return res, nil
	}

	// Some models answer in percent.
	score := out.Score
	if score > 1 {
		score /= 100
	}
	score = min(max(score, 0), 1)

	res.Intent = out.Intent
	res.Score = score
	res.Classifications = []recognizer.Classification{{Intent: out.Intent, Score: score}}
	res.Answer = c.Answer(locale, out.Intent)

	e.l.Infof(ctx, "%s: classified as %s (score: %.2f)", LogPrefixProcess, res.Intent, res.Score)
	return res, nil
}

// stripFences removes a surrounding ```json ... ``` block if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "```json"); ok {
		s = rest
	} else if rest, ok := strings.CutPrefix(s, "```"); ok {
		s = rest
	} else {
		return s
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}
