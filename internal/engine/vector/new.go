package vector

import (
	"sync"

	"nlu-router/internal/engine"
	"nlu-router/internal/engine/corpus"
	"nlu-router/pkg/log"
	"nlu-router/pkg/voyage"
)

// Engine classifies utterances by nearest-neighbour search over embedded examples.
type Engine struct {
	embedder voyage.IVoyage
	store    Store
	l        log.Logger
	opts     Options

	mu        sync.RWMutex
	corpus    *corpus.Corpus
	extractor *corpus.Extractor
	trained   bool
}

var _ engine.Model = (*Engine)(nil)

// New creates an untrained engine.
func New(embedder voyage.IVoyage, store Store, l log.Logger, opts Options) *Engine {
	return &Engine{
		embedder: embedder,
		store:    store,
		l:        l,
		opts:     opts.withDefaults(),
	}
}

// SetCorpus replaces the corpus; call Train before processing.
func (e *Engine) SetCorpus(c *corpus.Corpus) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.corpus = c
	e.extractor = nil
	e.trained = false
}
