package vector

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"

	"nlu-router/pkg/qdrant"
	"nlu-router/pkg/voyage"
)

// fakeEmbedder maps texts to bag-of-letters vectors so similar words land close.
type fakeEmbedder struct {
	mu      sync.Mutex
	batches [][]string
	err     error
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string, inputType voyage.InputType) ([][]float32, error) {
	f.mu.Lock()
	f.batches = append(f.batches, texts)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v := make([]float32, 26)
		for _, r := range strings.ToLower(t) {
			if r >= 'a' && r <= 'z' {
				v[r-'a']++
			}
		}
		out[i] = v
	}
	return out, nil
}

type fakeStore struct {
	mu       sync.Mutex
	exists   bool
	deleted  int
	created  []qdrant.CreateCollectionRequest
	points   map[string]qdrant.Point
	searches []qdrant.SearchRequest
}

func newFakeStore() *fakeStore {
	return &fakeStore{points: map[string]qdrant.Point{}}
}

func (f *fakeStore) CollectionExists(ctx context.Context, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.exists, nil
}

func (f *fakeStore) CreateCollection(ctx context.Context, req qdrant.CreateCollectionRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, req)
	f.exists = true
	return nil
}

func (f *fakeStore) DeleteCollection(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted++
	f.points = map[string]qdrant.Point{}
	f.exists = false
	return nil
}

func (f *fakeStore) UpsertPoints(ctx context.Context, collection string, req qdrant.UpsertPointsRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range req.Points {
		f.points[p.ID] = p
	}
	return nil
}

func (f *fakeStore) SearchPoints(ctx context.Context, collection string, req qdrant.SearchRequest) (*qdrant.SearchResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, req)

	var hits []qdrant.ScoredPoint
	for _, p := range f.points {
		if req.Filter != nil && p.Payload[req.Filter.Must[0].Key] != req.Filter.Must[0].Match.Value {
			continue
		}
		hits = append(hits, qdrant.ScoredPoint{ID: p.ID, Score: cosine(req.Vector, p.Vector), Payload: p.Payload})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > req.Limit {
		hits = hits[:req.Limit]
	}
	return &qdrant.SearchResponse{Result: hits}, nil
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
