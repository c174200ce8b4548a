package dialog

import "time"

// DefaultBotName is the library name of dialogs registered on a Bot.
const DefaultBotName = "*"

// DefaultDialogID is begun when a turn arrives for an empty dialog stack.
const DefaultDialogID = "/"

// Built-in dialogs live in their own library so DialogID lookups skip them.
const (
	FrameworkLibrary   = "BotBuilder"
	PromptTextDialogID = FrameworkLibrary + ":prompt-text"
)

// ActiveDialogScore is what an active dialog bids when it does not score turns itself.
const ActiveDialogScore = 0.1

const (
	DefaultStateTTL  = 24 * time.Hour
	DefaultStateSize = 10000
)

// Log prefixes
const (
	LogPrefixDispatch     = "internal.dialog.Bot.Dispatch"
	LogPrefixRecognize    = "internal.dialog.Bot.recognize"
	LogPrefixDisambiguate = "internal.dialog.Bot.disambiguate"
	LogPrefixSession      = "internal.dialog.Session"
)
