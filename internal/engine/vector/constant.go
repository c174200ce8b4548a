package vector

// Log prefixes
const (
	LogPrefixProcess = "internal.engine.vector.Process"
	LogPrefixTrain   = "internal.engine.vector.Train"
)

// Defaults
const (
	DefaultCollection  = "nlu_utterances"
	DefaultConcurrency = 4
	DefaultTopK        = 5
)

// Point payload keys
const (
	PayloadLocale    = "locale"
	PayloadIntent    = "intent"
	PayloadUtterance = "utterance"
)
