package llm

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nlu-router/internal/engine"
	"nlu-router/internal/engine/corpus"
	"nlu-router/internal/recognizer"
	"nlu-router/pkg/llmprovider"
	"nlu-router/pkg/log"
)

type fakeGenerator struct {
	mu   sync.Mutex
	text string
	err  error
	reqs []*llmprovider.Request
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return &llmprovider.Response{Text: f.text, ProviderName: "fake"}, nil
}

func testCorpus() *corpus.Corpus {
	c := corpus.New("en")
	c.AddUtterance("en", "help", "I need help")
	c.AddUtterance("en", "help", "what can you do")
	c.AddAnswer("en", "help", "/Help")
	c.AddUtterance("en", "order", "I want a pizza")
	c.AddEntityOption("en", "size", "large", "big")
	return c
}

func trained(t *testing.T, gen Generator) *Engine {
	t.Helper()
	e := New(gen, log.NewNop(), Options{DefaultLocale: "en"})
	e.SetCorpus(testCorpus())
	require.NoError(t, e.Train(context.Background()))
	return e
}

func TestProcess(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantIntent string
		wantScore  float64
		wantAnswer string
	}{
		{name: "plain json", text: `{"intent":"help","score":0.92}`, wantIntent: "help", wantScore: 0.92, wantAnswer: "/Help"},
		{name: "fenced json", text: "```json\n{\"intent\":\"order\",\"score\":0.8}\n```", wantIntent: "order", wantScore: 0.8},
		{name: "percent score", text: `{"intent":"order","score":85}`, wantIntent: "order", wantScore: 0.85},
		{name: "none", text: `{"intent":"None","score":0.9}`, wantIntent: recognizer.IntentNone},
		{name: "unknown intent", text: `{"intent":"weather","score":0.9}`, wantIntent: recognizer.IntentNone},
		{name: "not json", text: "I think it's help", wantIntent: recognizer.IntentNone},
		{name: "empty", text: "  ", wantIntent: recognizer.IntentNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := trained(t, &fakeGenerator{text: tt.text})

			res, err := e.Process(context.Background(), recognizer.EngineRequest{Utterance: "a big one please"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantIntent, res.Intent)
			assert.InDelta(t, tt.wantScore, res.Score, 1e-9)
			assert.Equal(t, tt.wantAnswer, res.Answer)
			assert.Equal(t, "en", res.Locale)
			require.Len(t, res.Entities, 1)
			assert.Equal(t, "large", res.Entities[0].Option)
		})
	}
}

func TestProcess_Prompt(t *testing.T) {
	gen := &fakeGenerator{text: `{"intent":"help","score":1}`}
	e := trained(t, gen)

	_, err := e.Process(context.Background(), recognizer.EngineRequest{Locale: "en-GB", Utterance: "help me"})
	require.NoError(t, err)

	require.Len(t, gen.reqs, 1)
	req := gen.reqs[0]
	assert.True(t, req.JSONOutput)
	assert.Equal(t, []llmprovider.Message{{Role: llmprovider.RoleUser, Text: "help me"}}, req.Messages)
	assert.Contains(t, req.SystemInstruction, `- help: "I need help", "what can you do"`)
	assert.Contains(t, req.SystemInstruction, `- order: "I want a pizza"`)
}

func TestProcess_Errors(t *testing.T) {
	e := New(&fakeGenerator{}, log.NewNop(), Options{})
	_, err := e.Process(context.Background(), recognizer.EngineRequest{Utterance: "hi"})
	require.ErrorIs(t, err, engine.ErrNotTrained)

	boom := errors.New("all providers failed")
	e = trained(t, &fakeGenerator{err: boom})
	_, err = e.Process(context.Background(), recognizer.EngineRequest{Utterance: "hi"})
	require.ErrorIs(t, err, boom)
}

func TestProcess_UnsupportedLocaleUsesDefault(t *testing.T) {
	gen := &fakeGenerator{text: `{"intent":"help","score":0.9}`}
	e := trained(t, gen)

	res, err := e.Process(context.Background(), recognizer.EngineRequest{Locale: "vi", Utterance: "help me"})
	require.NoError(t, err)
	assert.Equal(t, "en", res.Locale)
	assert.Equal(t, "help", res.Intent)
	assert.Equal(t, "/Help", res.Answer)
}

func TestBuildPrompt_LimitsExamples(t *testing.T) {
	c := corpus.New("en")
	for _, u := range []string{"a", "b", "c"} {
		c.AddUtterance("en", "x", u)
	}
	p := buildPrompt(c.Locales["en"], 2)
	assert.Contains(t, p, `- x: "a", "b"`+"\n")
	assert.False(t, strings.Contains(p, `"c"`))
}

func TestImportAndLoad(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "corpus.yaml")
	model := filepath.Join(dir, "model.yaml")
	require.NoError(t, testCorpus().Save(src))

	gen := &fakeGenerator{text: `{"intent":"help","score":0.9}`}
	e := New(gen, log.NewNop(), Options{ModelPath: model, DefaultLocale: "en"})
	require.NoError(t, e.Import(context.Background(), src))

	loaded := New(gen, log.NewNop(), Options{})
	require.NoError(t, loaded.Load(context.Background(), model))
	res, err := loaded.Process(context.Background(), recognizer.EngineRequest{Utterance: "help"})
	require.NoError(t, err)
	assert.Equal(t, "help", res.Intent)

	noPath := New(gen, log.NewNop(), Options{})
	require.ErrorIs(t, noPath.Import(context.Background(), src), engine.ErrNoModelPath)
	require.ErrorIs(t, noPath.Save(context.Background(), model), engine.ErrNotTrained)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("```\n{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, stripFences(` {"a":1} `))
}
