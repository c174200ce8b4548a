package dialog

import (
	"context"

	"nlu-router/internal/model"
	"nlu-router/internal/recognizer"
)

// Dialog handles the turns routed to it while it is on top of the stack.
type Dialog interface {
	Begin(ctx context.Context, s *Session, args any) error
	Reply(ctx context.Context, s *Session) error
}

// Resumer is implemented by dialogs that want the result of a child dialog.
type Resumer interface {
	Resume(ctx context.Context, s *Session, result any) error
}

// Scorer is implemented by dialogs that bid on turns while active.
type Scorer interface {
	Score(ctx context.Context, s *Session) float64
}

// IntentRecognizer scores a turn before routing.
type IntentRecognizer interface {
	Recognize(ctx context.Context, turn model.Turn) (recognizer.Result, error)
}

// Sender delivers outbound text to a conversation.
type Sender interface {
	Send(ctx context.Context, addr model.Address, text string) error
}

// DisambiguateFunc replaces the default choice between candidate routes.
type DisambiguateFunc func(ctx context.Context, s *Session, routes []RouteResult) error
