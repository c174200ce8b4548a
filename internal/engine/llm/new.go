package llm

import (
	"context"
	"sync"

	"nlu-router/internal/engine"
	"nlu-router/internal/engine/corpus"
	"nlu-router/pkg/llmprovider"
	"nlu-router/pkg/log"
)

// Generator produces text completions. *llmprovider.Manager implements it.
type Generator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// Engine classifies utterances by prompting an LLM with the corpus intents.
type Engine struct {
	gen  Generator
	l    log.Logger
	opts Options

	mu        sync.RWMutex
	corpus    *corpus.Corpus
	extractor *corpus.Extractor
	prompts   map[string]string
}

var _ engine.Model = (*Engine)(nil)

// New creates an untrained engine.
func New(gen Generator, l log.Logger, opts Options) *Engine {
	if opts.Examples <= 0 {
		opts.Examples = DefaultExamples
	}
	return &Engine{
		gen:  gen,
		l:    l,
		opts: opts,
	}
}

// SetCorpus replaces the corpus; call Train before processing.
func (e *Engine) SetCorpus(c *corpus.Corpus) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.corpus = c
	e.prompts = nil
	e.extractor = nil
}
