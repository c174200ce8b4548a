package llm

// Options configures the engine.
type Options struct {
	// ModelPath is where Import saves the trained corpus.
	ModelPath string
	// DefaultLocale is used for tabular imports without a locale column.
	DefaultLocale string
	// Examples caps the utterances listed per intent in the prompt.
	Examples int
}

// classification is the JSON the model answers with.
type classification struct {
	Intent    string  `json:"intent"`
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
}
