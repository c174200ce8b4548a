package corpus

import "math/rand/v2"

// Corpus is the training data shared by every engine: intents with example
// utterances and answers, plus named entities, grouped by locale.
type Corpus struct {
	DefaultLocale string             `yaml:"default_locale"`
	Timezone      string             `yaml:"timezone,omitempty"`
	Locales       map[string]*Locale `yaml:"locales"`

	pick func(n int) int `yaml:"-"`
}

// Locale holds the data of one language.
type Locale struct {
	Intents  []Intent      `yaml:"intents"`
	Entities []NamedEntity `yaml:"entities,omitempty"`
}

// Intent is a named user goal with examples and canned answers.
// An answer starting with "/" names a dialog to begin.
type Intent struct {
	Name       string   `yaml:"name"`
	Utterances []string `yaml:"utterances"`
	Answers    []string `yaml:"answers,omitempty"`
}

// NamedEntity is an enumerated entity resolved by matching option texts.
type NamedEntity struct {
	Name    string         `yaml:"name"`
	Options []EntityOption `yaml:"options"`
}

// EntityOption is one resolved value and the texts that refer to it.
type EntityOption struct {
	Value    string   `yaml:"value"`
	Synonyms []string `yaml:"synonyms,omitempty"`
}

// New returns an empty corpus.
func New(defaultLocale string) *Corpus {
	return &Corpus{
		DefaultLocale: defaultLocale,
		Locales:       map[string]*Locale{},
		pick:          rand.IntN,
	}
}
