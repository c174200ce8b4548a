package llm

import (
	"context"
	"fmt"
	"strings"

	"nlu-router/internal/engine"
	"nlu-router/internal/engine/corpus"
)

// Train builds one classifier prompt per locale.
func (e *Engine) Train(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.corpus == nil {
		return engine.ErrNotTrained
	}
	if err := e.corpus.Validate(); err != nil {
		return fmt.Errorf("%s: %w", LogPrefixTrain, err)
	}
	x, err := corpus.NewExtractor(e.corpus)
	if err != nil {
		return fmt.Errorf("%s: %w", LogPrefixTrain, err)
	}

	prompts := make(map[string]string, len(e.corpus.Locales))
	for name, l := range e.corpus.Locales {
		prompts[name] = buildPrompt(l, e.opts.Examples)
	}
	e.prompts = prompts
	e.extractor = x

	e.l.Infof(ctx, "%s: trained %d locales", LogPrefixTrain, len(prompts))
	return nil
}

func buildPrompt(l *corpus.Locale, examples int) string {
	var b strings.Builder
	for _, in := range l.Intents {
		ex := in.Utterances
		if len(ex) > examples {
			ex = ex[:examples]
		}
		quoted := make([]string, len(ex))
		for i, u := range ex {
			quoted[i] = fmt.Sprintf("%q", u)
		}
		fmt.Fprintf(&b, PromptIntentLine, in.Name, strings.Join(quoted, ", "))
	}
	return fmt.Sprintf(PromptSystem, b.String())
}

// Load reads a saved corpus and trains on it.
func (e *Engine) Load(ctx context.Context, filename string) error {
	c, err := corpus.Load(filename)
	if err != nil {
		return err
	}
	e.SetCorpus(c)
	return e.Train(ctx)
}

// Save writes the current corpus.
func (e *Engine) Save(ctx context.Context, filename string) error {
	e.mu.RLock()
	c := e.corpus
	e.mu.RUnlock()
	if c == nil {
		return engine.ErrNotTrained
	}
	return c.Save(filename)
}

// Import reads a corpus file, trains and saves it to the model path.
func (e *Engine) Import(ctx context.Context, filename string) error {
	if e.opts.ModelPath == "" {
		return engine.ErrNoModelPath
	}
	c, err := corpus.Import(filename, e.opts.DefaultLocale)
	if err != nil {
		return err
	}
	e.SetCorpus(c)
	if err := e.Train(ctx); err != nil {
		return err
	}
	return e.Save(ctx, e.opts.ModelPath)
}
