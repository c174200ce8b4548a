package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nlu-router/internal/recognizer"
	"nlu-router/pkg/log"
)

func newTestUseCase(t *testing.T, engine recognizer.Engine, repo *fakeRepo) *implUseCase {
	t.Helper()
	uc, err := New(engine, repo, log.NewNop(), 0.7)
	require.NoError(t, err)
	return uc
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, newFakeRepo(), log.NewNop(), 0.7)
	assert.ErrorIs(t, err, recognizer.ErrNilEngine)

	_, err = New(&fakeEngine{}, nil, log.NewNop(), 0.7)
	assert.ErrorIs(t, err, recognizer.ErrNilRepository)

	_, err = New(&fakeEngine{}, newFakeRepo(), log.NewNop(), 1.5)
	assert.ErrorIs(t, err, recognizer.ErrInvalidThreshold)
}

func TestProcess(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		result       recognizer.Result
		wantAnswer   string
		wantModified bool
		wantContext  recognizer.Context
	}{
		{
			name: "below threshold clears answer and leaves context",
			result: recognizer.Result{
				Intent: "greet", Score: 0.4, Answer: "hello",
				Entities: []recognizer.Entity{{Entity: "name", Option: "Ann"}},
			},
			wantContext: recognizer.Context{"city": "Paris"},
		},
		{
			name: "none intent clears answer even with a high score",
			result: recognizer.Result{
				Intent: recognizer.IntentNone, Score: 0.99, Answer: "hello",
				Entities: []recognizer.Entity{{Entity: "name", Option: "Ann"}},
			},
			wantContext: recognizer.Context{"city": "Paris"},
		},
		{
			name: "score equal to threshold is accepted",
			result: recognizer.Result{
				Intent: "greet", Score: 0.7, Answer: "hello",
				Entities: []recognizer.Entity{{Entity: "name", Option: "Ann"}},
			},
			wantAnswer:   "hello",
			wantModified: true,
			wantContext:  recognizer.Context{"city": "Paris", "name": "Ann"},
		},
		{
			name: "last duplicate entity wins",
			result: recognizer.Result{
				Intent: "order", Score: 0.9, Answer: "ok",
				Entities: []recognizer.Entity{
					{Entity: "size", Option: "small"},
					{Entity: "city", Option: "Rome"},
					{Entity: "size", Option: "large"},
				},
			},
			wantAnswer:   "ok",
			wantModified: true,
			wantContext:  recognizer.Context{"city": "Rome", "size": "large"},
		},
		{
			name:        "accepted without entities is not a modification",
			result:      recognizer.Result{Intent: "greet", Score: 0.9, Answer: "hi"},
			wantAnswer:  "hi",
			wantContext: recognizer.Context{"city": "Paris"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(t, &fakeEngine{result: tt.result}, newFakeRepo())
			in := recognizer.Context{"city": "Paris"}

			res, merge, err := uc.Process(ctx, in, "en", "text")
			require.NoError(t, err)

			assert.Equal(t, tt.wantAnswer, res.Answer)
			assert.Equal(t, tt.wantModified, merge.Modified)
			assert.Equal(t, tt.wantContext, merge.Context)
			assert.Equal(t, recognizer.Context{"city": "Paris"}, in, "caller context must not be mutated")
		})
	}
}

func TestProcess_PassesLocaleAndSnapshot(t *testing.T) {
	engine := &fakeEngine{result: recognizer.Result{Intent: recognizer.IntentNone}}
	uc := newTestUseCase(t, engine, newFakeRepo())

	in := recognizer.Context{"k": "v"}
	_, _, err := uc.Process(context.Background(), in, "", "hello")
	require.NoError(t, err)

	require.Len(t, engine.calls, 1)
	assert.Equal(t, "", engine.calls[0].Locale)
	assert.Equal(t, "hello", engine.calls[0].Utterance)
	assert.Equal(t, in, engine.calls[0].Context)

	engine.calls[0].Context["k"] = "changed"
	assert.Equal(t, "v", in["k"])
}

func TestProcess_Errors(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("model not loaded")
	uc := newTestUseCase(t, &fakeEngine{err: cause}, newFakeRepo())

	_, _, err := uc.Process(ctx, nil, "en", "hi")
	assert.ErrorIs(t, err, recognizer.ErrNilContext)

	_, _, err = uc.Process(ctx, recognizer.Context{}, "en", "")
	assert.ErrorIs(t, err, recognizer.ErrEmptyUtterance)

	_, _, err = uc.Process(ctx, recognizer.Context{}, "en", "hi")
	assert.ErrorIs(t, err, cause)
}
