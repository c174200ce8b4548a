package routing

// DialogAnswerPrefix marks an answer that names a dialog to begin.
const DialogAnswerPrefix = "/"

// Log prefixes
const (
	LogPrefixRoute = "internal.routing.Decider.Route"
)
