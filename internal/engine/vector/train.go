package vector

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"nlu-router/internal/engine"
	"nlu-router/internal/engine/corpus"
	"nlu-router/pkg/qdrant"
	"nlu-router/pkg/voyage"
)

// pointNamespace scopes the UUIDv5 point ids so retraining overwrites points in place.
var pointNamespace = uuid.MustParse("6f1c2b9e-7a43-4d0e-9b8a-2c5e1f0d3a71")

// Train embeds every utterance and rebuilds the collection.
func (e *Engine) Train(ctx context.Context) error {
	e.mu.RLock()
	c := e.corpus
	e.mu.RUnlock()
	if c == nil {
		return engine.ErrNotTrained
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("%s: %w", LogPrefixTrain, err)
	}
	x, err := corpus.NewExtractor(c)
	if err != nil {
		return fmt.Errorf("%s: %w", LogPrefixTrain, err)
	}

	docs := collect(c)
	vectors, err := e.embedAll(ctx, docs)
	if err != nil {
		return fmt.Errorf("%s: %w", LogPrefixTrain, err)
	}
	if err := e.recreateCollection(ctx, len(vectors[0])); err != nil {
		return fmt.Errorf("%s: %w", LogPrefixTrain, err)
	}

	points := make([]qdrant.Point, len(docs))
	for i, d := range docs {
		points[i] = qdrant.Point{
			ID:     PointID(d.locale, d.intent, d.utterance),
			Vector: vectors[i],
			Payload: map[string]any{
				PayloadLocale:    d.locale,
				PayloadIntent:    d.intent,
				PayloadUtterance: d.utterance,
			},
		}
	}
	for start := 0; start < len(points); start += e.opts.BatchSize {
		end := min(start+e.opts.BatchSize, len(points))
		if err := e.store.UpsertPoints(ctx, e.opts.Collection, qdrant.UpsertPointsRequest{Points: points[start:end]}); err != nil {
			return fmt.Errorf("%s: upsert: %w", LogPrefixTrain, err)
		}
	}

	e.mu.Lock()
	if e.corpus == c {
		e.extractor = x
		e.trained = true
	}
	e.mu.Unlock()

	e.l.Infof(ctx, "%s: indexed %d utterances into %s", LogPrefixTrain, len(points), e.opts.Collection)
	return nil
}

// PointID is the deterministic id of a training utterance.
func PointID(locale, intent, utterance string) string {
	return uuid.NewSHA1(pointNamespace, []byte(locale+"\x00"+intent+"\x00"+utterance)).String()
}

func collect(c *corpus.Corpus) []document {
	var docs []document
	for locale, l := range c.Locales {
		for _, in := range l.Intents {
			for _, u := range in.Utterances {
				docs = append(docs, document{locale: locale, intent: in.Name, utterance: u})
			}
		}
	}
	return docs
}

// embedAll embeds documents in parallel batches, keeping input order.
func (e *Engine) embedAll(ctx context.Context, docs []document) ([][]float32, error) {
	if len(docs) == 0 {
		return nil, corpus.ErrEmptyCorpus
	}
	out := make([][]float32, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Concurrency)
	for start := 0; start < len(docs); start += e.opts.BatchSize {
		end := min(start+e.opts.BatchSize, len(docs))
		g.Go(func() error {
			texts := make([]string, 0, end-start)
			for _, d := range docs[start:end] {
				texts = append(texts, d.utterance)
			}
			vecs, err := e.embedder.Embed(gctx, texts, voyage.InputTypeDocument)
			if err != nil {
				return fmt.Errorf("embed batch %d-%d: %w", start, end, err)
			}
			if len(vecs) != len(texts) {
				return fmt.Errorf("embed batch %d-%d: got %d vectors", start, end, len(vecs))
			}
			copy(out[start:end], vecs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Engine) recreateCollection(ctx context.Context, dim int) error {
	exists, err := e.store.CollectionExists(ctx, e.opts.Collection)
	if err != nil {
		return err
	}
	if exists {
		if err := e.store.DeleteCollection(ctx, e.opts.Collection); err != nil {
			return err
		}
	}
	return e.store.CreateCollection(ctx, qdrant.CreateCollectionRequest{
		Name:    e.opts.Collection,
		Vectors: qdrant.VectorConfig{Size: dim, Distance: qdrant.DistanceCosine},
	})
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
