package dialog

import (
	"fmt"
	"regexp"
	"time"
)

// RouteType says where a candidate route came from.
type RouteType int

const (
	RouteTypeActiveDialog RouteType = iota + 1
	RouteTypeStackAction
	RouteTypeGlobalAction
)

func (t RouteType) String() string {
	switch t {
	case RouteTypeActiveDialog:
		return "ActiveDialog"
	case RouteTypeStackAction:
		return "StackAction"
	case RouteTypeGlobalAction:
		return "GlobalAction"
	default:
		return fmt.Sprintf("RouteType(%d)", int(t))
	}
}

// priority orders route types on equal scores; lower wins.
func (t RouteType) priority() int {
	switch t {
	case RouteTypeActiveDialog:
		return 2
	case RouteTypeStackAction:
		return 3
	case RouteTypeGlobalAction:
		return 4
	default:
		return 1
	}
}

// RouteResult is one candidate destination for a turn.
type RouteResult struct {
	Score       float64
	RouteType   RouteType
	LibraryName string
	// DialogID is the fully qualified dialog to begin for action routes.
	DialogID string
	// StackIndex is the stack position of the frame that owns a stack action.
	StackIndex int
}

// TriggerOptions binds a dialog to turns by intent or pattern.
type TriggerOptions struct {
	Intent  string
	Pattern *regexp.Regexp
	// Scope restricts the trigger to turns where this dialog is on the stack.
	// An empty scope makes it a global action.
	Scope string
}

type trigger struct {
	dialogID string
	opts     TriggerOptions
}

// Options configures a Bot.
type Options struct {
	Name            string
	DefaultDialogID string
	// StateTTL bounds how long an idle dialog stack is kept. Zero keeps it until evicted by size.
	StateTTL  time.Duration
	StateSize int
}

func (o Options) withDefaults() Options {
	if o.Name == "" {
		o.Name = DefaultBotName
	}
	if o.DefaultDialogID == "" {
		o.DefaultDialogID = DefaultDialogID
	}
	if o.StateSize <= 0 {
		o.StateSize = DefaultStateSize
	}
	return o
}
