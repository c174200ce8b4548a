package vector

import (
	"context"

	"nlu-router/pkg/qdrant"
	"nlu-router/pkg/voyage"
)

// Store is the subset of the Qdrant client the engine needs.
type Store interface {
	CollectionExists(ctx context.Context, name string) (bool, error)
	CreateCollection(ctx context.Context, req qdrant.CreateCollectionRequest) error
	DeleteCollection(ctx context.Context, name string) error
	UpsertPoints(ctx context.Context, collection string, req qdrant.UpsertPointsRequest) error
	SearchPoints(ctx context.Context, collection string, req qdrant.SearchRequest) (*qdrant.SearchResponse, error)
}

var _ Store = (*qdrant.Client)(nil)

// Options configures the engine.
type Options struct {
	Collection    string
	ModelPath     string
	DefaultLocale string
	// BatchSize is the number of utterances per embedding request.
	BatchSize int
	// Concurrency caps parallel embedding requests during training.
	Concurrency int
	TopK        int
}

func (o Options) withDefaults() Options {
	if o.Collection == "" {
		o.Collection = DefaultCollection
	}
	if o.BatchSize <= 0 || o.BatchSize > voyage.MaxBatchSize {
		o.BatchSize = voyage.MaxBatchSize
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.TopK <= 0 {
		o.TopK = DefaultTopK
	}
	return o
}

// document is one training utterance.
type document struct {
	locale    string
	intent    string
	utterance string
}
