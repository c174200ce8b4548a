package routing

import (
	"context"

	"nlu-router/internal/dialog"
	"nlu-router/internal/recognizer"
)

// Decision is what a hook returns to let routing proceed or stop.
type Decision int

const (
	Continue Decision = iota
	Abort
)

func (d Decision) String() string {
	if d == Abort {
		return "abort"
	}
	return "continue"
}

// Action is the outcome of one routing pass.
type Action int

const (
	ActionAborted Action = iota + 1
	ActionBeganDialog
	ActionSentAnswer
	ActionDefaultRoute
)

func (a Action) String() string {
	switch a {
	case ActionAborted:
		return "aborted"
	case ActionBeganDialog:
		return "began_dialog"
	case ActionSentAnswer:
		return "sent_answer"
	case ActionDefaultRoute:
		return "default_route"
	default:
		return "unknown"
	}
}

// Hooks are optional integrator callbacks. A nil hook always continues.
type Hooks struct {
	OnBeginRouting        func(ctx context.Context, s *dialog.Session, routes []dialog.RouteResult) Decision
	OnRecognizedRouting   func(ctx context.Context, s *dialog.Session, res recognizer.Result) Decision
	OnUnrecognizedRouting func(ctx context.Context, s *dialog.Session, res recognizer.Result) Decision
	OnNoTextRouting       func(ctx context.Context, s *dialog.Session) Decision
}
