package recognizer

// IntentNone is the reserved intent meaning "no confident classification".
const IntentNone = "None"

// Reserved conversation context keys.
const (
	KeyDialogID = "dialogId"
	KeyModified = "$modified"
)

// DialogPrefix marks developer-level dialogs on the host's dialog stack.
const DialogPrefix = "*:"

// DefaultThreshold is the acceptance threshold used when none is configured.
const DefaultThreshold = 0.7

// Log prefixes
const (
	LogPrefixProcess   = "internal.recognizer.usecase.Process"
	LogPrefixRecognize = "internal.recognizer.usecase.Recognize"
)
