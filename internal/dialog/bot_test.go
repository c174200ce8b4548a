package dialog

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nlu-router/internal/model"
	"nlu-router/internal/recognizer"
	"nlu-router/pkg/log"
)

func newTestBot(t *testing.T) (*Bot, *recordingSender) {
	t.Helper()
	sender := &recordingSender{}
	b, err := New(sender, log.NewNop(), Options{})
	require.NoError(t, err)
	return b, sender
}

func stackIDs(stack []model.DialogFrame) []string {
	ids := make([]string, 0, len(stack))
	for _, f := range stack {
		ids = append(ids, f.ID)
	}
	return ids
}

func TestNew_RequiresSender(t *testing.T) {
	_, err := New(nil, log.NewNop(), Options{})
	assert.ErrorIs(t, err, ErrNilSender)
}

func TestDialog_Registration(t *testing.T) {
	b, _ := newTestBot(t)

	require.NoError(t, b.Dialog("/", sayDialog("root")))
	assert.ErrorIs(t, b.Dialog("*:/", sayDialog("again")), ErrDuplicateDialog)
	assert.ErrorIs(t, b.Trigger("help", TriggerOptions{}), ErrInvalidTrigger)
	assert.Equal(t, "*", b.Name())
}

func TestDispatch_BeginsDefaultDialogOnEmptyStack(t *testing.T) {
	b, sender := newTestBot(t)
	require.NoError(t, b.Dialog("/", sayDialog("welcome")))

	turn := textTurn("hello")
	require.NoError(t, b.Dispatch(context.Background(), turn))

	assert.Equal(t, []string{"welcome"}, sender.texts())
	assert.Equal(t, []string{"*:/"}, stackIDs(b.Stack(turn.Address)))

	require.NoError(t, b.Dispatch(context.Background(), turn))
	assert.Equal(t, []string{"welcome", "welcome"}, sender.texts(), "second turn replies to the active dialog")
	assert.Equal(t, []string{"*:/"}, stackIDs(b.Stack(turn.Address)))
}

func TestDispatch_NoDialogs(t *testing.T) {
	b, sender := newTestBot(t)
	require.NoError(t, b.Dispatch(context.Background(), textTurn("hello")))
	assert.Empty(t, sender.texts())
}

func TestDispatch_GlobalTriggers(t *testing.T) {
	ctx := context.Background()

	t.Run("intent trigger replaces the stack", func(t *testing.T) {
		b, sender := newTestBot(t)
		require.NoError(t, b.Dialog("/", sayDialog("root")))
		require.NoError(t, b.Dialog("weather", sayDialog("sunny")))
		require.NoError(t, b.Trigger("weather", TriggerOptions{Intent: "weather"}))
		b.Recognizer(staticRecognizer{result: recognizer.Result{Intent: "weather", Score: 0.8}})

		turn := textTurn("hi")
		require.NoError(t, b.Dispatch(ctx, turn))

		assert.Equal(t, []string{"sunny"}, sender.texts())
		assert.Equal(t, []string{"*:weather"}, stackIDs(b.Stack(turn.Address)))
	})

	t.Run("pattern trigger", func(t *testing.T) {
		b, sender := newTestBot(t)
		require.NoError(t, b.Dialog("help", sayDialog("how can I help?")))
		require.NoError(t, b.Trigger("help", TriggerOptions{Pattern: regexp.MustCompile(`(?i)^help$`)}))

		require.NoError(t, b.Dispatch(ctx, textTurn("HELP")))
		assert.Equal(t, []string{"how can I help?"}, sender.texts())
	})

	t.Run("recognizer errors are ignored", func(t *testing.T) {
		b, sender := newTestBot(t)
		require.NoError(t, b.Dialog("/", sayDialog("root")))
		require.NoError(t, b.Trigger("/", TriggerOptions{Intent: "greet"}))
		b.Recognizer(staticRecognizer{err: errors.New("boom")})

		require.NoError(t, b.Dispatch(ctx, textTurn("hi")))
		assert.Equal(t, []string{"root"}, sender.texts())
	})
}

func TestDispatch_StackActionUnwindsToOwner(t *testing.T) {
	ctx := context.Background()
	b, sender := newTestBot(t)

	require.NoError(t, b.Dialog("/", funcDialog{
		begin: func(ctx context.Context, s *Session, _ any) error { return s.BeginDialog(ctx, "order", nil) },
	}))
	require.NoError(t, b.Dialog("order", funcDialog{
		begin: func(ctx context.Context, s *Session, _ any) error { return s.PromptText(ctx, "What size?") },
	}))
	require.NoError(t, b.Dialog("cancel", sayDialog("cancelled")))
	require.NoError(t, b.Trigger("cancel", TriggerOptions{Pattern: regexp.MustCompile(`^cancel$`), Scope: "/"}))

	turn := textTurn("start")
	require.NoError(t, b.Dispatch(ctx, turn))
	assert.Equal(t, []string{"*:/", "*:order", PromptTextDialogID}, stackIDs(b.Stack(turn.Address)))

	require.NoError(t, b.Dispatch(ctx, textTurn("cancel")))
	assert.Equal(t, []string{"*:/", "*:cancel"}, stackIDs(b.Stack(turn.Address)))
	assert.Equal(t, []string{"What size?", "cancelled"}, sender.texts())
}

func TestPromptText_ResumesParent(t *testing.T) {
	ctx := context.Background()
	b, sender := newTestBot(t)

	var got any
	require.NoError(t, b.Dialog("/", funcDialog{
		begin: func(ctx context.Context, s *Session, _ any) error { return s.PromptText(ctx, "Your name?") },
		resume: func(ctx context.Context, s *Session, result any) error {
			got = result
			return s.Send(ctx, "Hi "+result.(string))
		},
	}))

	turn := textTurn("start")
	require.NoError(t, b.Dispatch(ctx, turn))
	require.NoError(t, b.Dispatch(ctx, textTurn("Ann")))

	assert.Equal(t, "Ann", got)
	assert.Equal(t, []string{"Your name?", "Hi Ann"}, sender.texts())
	assert.Equal(t, []string{"*:/"}, stackIDs(b.Stack(turn.Address)))
}

func TestDispatch_OverrideReplacesDefault(t *testing.T) {
	ctx := context.Background()
	b, sender := newTestBot(t)
	require.NoError(t, b.Dialog("/", sayDialog("root")))

	var seen []RouteResult
	b.OnDisambiguateRoute(func(ctx context.Context, s *Session, routes []RouteResult) error {
		seen = routes
		return s.Send(ctx, "overridden")
	})

	require.NoError(t, b.Dispatch(ctx, textTurn("hi")))
	assert.Equal(t, []string{"overridden"}, sender.texts())
	assert.Empty(t, seen)
}

func TestDispatch_OverrideErrorIsReturned(t *testing.T) {
	b, _ := newTestBot(t)
	boom := errors.New("boom")
	b.OnDisambiguateRoute(func(ctx context.Context, s *Session, routes []RouteResult) error { return boom })

	err := b.Dispatch(context.Background(), textTurn("hi"))
	assert.ErrorIs(t, err, boom)
}

func TestSession_EndDialogOnEmptyStack(t *testing.T) {
	b, _ := newTestBot(t)
	s := newSession(b, textTurn("x"))
	assert.ErrorIs(t, s.EndDialog(context.Background(), nil), ErrEmptyStack)
	assert.ErrorIs(t, s.BeginDialog(context.Background(), "missing", nil), ErrDialogNotFound)
}

func TestSession_TurnCarriesCurrentStack(t *testing.T) {
	b, _ := newTestBot(t)
	require.NoError(t, b.Dialog("/", funcDialog{}))

	s := newSession(b, textTurn("x"))
	require.NoError(t, s.BeginDialog(context.Background(), "/", nil))

	assert.Equal(t, []string{"*:/"}, stackIDs(s.Turn().DialogStack))
	s.DialogData()["k"] = "v"
	assert.Equal(t, "v", s.DialogStack()[0].State["k"])
}
