package usecase

import (
	"context"
	"sync"

	"nlu-router/internal/recognizer"
)

type fakeEngine struct {
	mu     sync.Mutex
	result recognizer.Result
	err    error
	calls  []recognizer.EngineRequest
}

func (f *fakeEngine) Process(ctx context.Context, req recognizer.EngineRequest) (recognizer.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if f.err != nil {
		return recognizer.Result{}, f.err
	}
	res := f.result
	res.Entities = append([]recognizer.Entity(nil), f.result.Entities...)
	return res, nil
}

type fakeRepo struct {
	mu     sync.Mutex
	data   map[string]recognizer.Context
	getErr error
	setErr error
	gets   int
	sets   []recognizer.Context
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{data: map[string]recognizer.Context{}}
}

func (f *fakeRepo) GetContext(ctx context.Context, key string) (recognizer.Context, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	c, ok := f.data[key]
	if !ok {
		return recognizer.Context{}, nil
	}
	return c.Clone(), nil
}

func (f *fakeRepo) SetContext(ctx context.Context, key string, c recognizer.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets = append(f.sets, c.Clone())
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = c.Clone()
	return nil
}
