package dialog

import (
	"context"
	"fmt"

	"nlu-router/internal/model"
	"nlu-router/internal/recognizer"
)

// Session is the view of one turn handed to dialogs and routing hooks.
type Session struct {
	bot    *Bot
	turn   model.Turn
	stack  []model.DialogFrame
	intent recognizer.Result
}

func newSession(b *Bot, turn model.Turn) *Session {
	return &Session{
		bot:    b,
		turn:   turn,
		stack:  cloneStack(turn.DialogStack),
		intent: recognizer.NeutralResult(),
	}
}

// Turn returns the inbound turn with the current dialog stack.
func (s *Session) Turn() model.Turn {
	t := s.turn
	t.DialogStack = cloneStack(s.stack)
	return t
}

// Message returns the inbound message, or nil for events without one.
func (s *Session) Message() *model.Message {
	return s.turn.Message
}

func (s *Session) Text() string {
	return s.turn.Text()
}

// Intent is the best result produced by the bot's recognizers for this turn.
func (s *Session) Intent() recognizer.Result {
	return s.intent
}

func (s *Session) DialogStack() []model.DialogFrame {
	return cloneStack(s.stack)
}

// DialogData is the state bag of the active dialog, or nil when the stack is empty.
func (s *Session) DialogData() map[string]any {
	n := len(s.stack)
	if n == 0 {
		return nil
	}
	if s.stack[n-1].State == nil {
		s.stack[n-1].State = map[string]any{}
	}
	return s.stack[n-1].State
}

// BeginDialog pushes id onto the stack and starts it.
func (s *Session) BeginDialog(ctx context.Context, id string, args any) error {
	full := s.bot.qualify(id)
	d, ok := s.bot.lookup(full)
	if !ok {
		return fmt.Errorf("%w: %s", ErrDialogNotFound, full)
	}

	s.stack = append(s.stack, model.DialogFrame{ID: full})
	s.bot.l.Debugf(ctx, "%s: begin %s (depth %d)", LogPrefixSession, full, len(s.stack))
	return d.Begin(ctx, s, args)
}

// EndDialog pops the active dialog and resumes its parent with result.
func (s *Session) EndDialog(ctx context.Context, result any) error {
	n := len(s.stack)
	if n == 0 {
		return ErrEmptyStack
	}
	s.stack = s.stack[:n-1]

	if n == 1 {
		return nil
	}
	parent, ok := s.bot.lookup(s.stack[n-2].ID)
	if !ok {
		return nil
	}
	if r, ok := parent.(Resumer); ok {
		return r.Resume(ctx, s, result)
	}
	return nil
}

// Send delivers text to the conversation the turn came from.
func (s *Session) Send(ctx context.Context, text string) error {
	return s.bot.sender.Send(ctx, s.turn.Address, text)
}

// RouteToActiveDialog hands the turn to the dialog on top of the stack, beginning
// the bot's default dialog when the stack is empty.
func (s *Session) RouteToActiveDialog(ctx context.Context) error {
	n := len(s.stack)
	if n == 0 {
		if _, ok := s.bot.lookup(s.bot.opts.DefaultDialogID); !ok {
			s.bot.l.Debugf(ctx, "%s: no active dialog and no default dialog", LogPrefixSession)
			return nil
		}
		return s.BeginDialog(ctx, s.bot.opts.DefaultDialogID, nil)
	}

	d, ok := s.bot.lookup(s.stack[n-1].ID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrDialogNotFound, s.stack[n-1].ID)
	}
	return d.Reply(ctx, s)
}

// SelectRoute dispatches the turn to route.
func (s *Session) SelectRoute(ctx context.Context, route RouteResult) error {
	switch route.RouteType {
	case RouteTypeStackAction:
		if route.StackIndex+1 < len(s.stack) {
			s.stack = s.stack[:route.StackIndex+1]
		}
		return s.BeginDialog(ctx, route.DialogID, nil)
	case RouteTypeGlobalAction:
		s.stack = nil
		return s.BeginDialog(ctx, route.DialogID, nil)
	default:
		return s.RouteToActiveDialog(ctx)
	}
}

// PromptText asks the user for free text. The reply resumes the calling dialog.
func (s *Session) PromptText(ctx context.Context, prompt string) error {
	return s.BeginDialog(ctx, PromptTextDialogID, prompt)
}
