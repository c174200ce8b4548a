package corpus

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Locale resolves a locale name. Region variants fall back to their language
// ("en-US" -> "en"); "" and locales without data fall back to the default.
// It only fails when the default locale itself has no data.
func (c *Corpus) Locale(name string) (string, *Locale, error) {
	if l, ok := c.Locales[name]; ok {
		return name, l, nil
	}
	if lang, _, ok := strings.Cut(name, "-"); ok {
		if l, ok := c.Locales[lang]; ok {
			return lang, l, nil
		}
	}
	if l, ok := c.Locales[c.DefaultLocale]; ok {
		return c.DefaultLocale, l, nil
	}
	return "", nil, fmt.Errorf("%w: %q", ErrUnknownLocale, c.DefaultLocale)
}

// Validate checks that the corpus can be trained.
func (c *Corpus) Validate() error {
	if c.DefaultLocale == "" {
		return fmt.Errorf("%w: default_locale is empty", ErrUnknownLocale)
	}
	if _, ok := c.Locales[c.DefaultLocale]; !ok {
		return fmt.Errorf("%w: default locale %q has no data", ErrUnknownLocale, c.DefaultLocale)
	}
	for name, l := range c.Locales {
		if len(l.Intents) == 0 {
			return fmt.Errorf("%w: locale %q", ErrEmptyCorpus, name)
		}
	}
	return nil
}

// Intent finds an intent by name within a locale.
func (l *Locale) Intent(name string) (Intent, bool) {
	for _, in := range l.Intents {
		if in.Name == name {
			return in, true
		}
	}
	return Intent{}, false
}

// Answer picks one of the intent's answers, or "" when it has none.
func (c *Corpus) Answer(locale, intent string) string {
	_, l, err := c.Locale(locale)
	if err != nil {
		return ""
	}
	in, ok := l.Intent(intent)
	if !ok || len(in.Answers) == 0 {
		return ""
	}
	pick := c.pick
	if pick == nil {
		pick = rand.IntN
	}
	return in.Answers[pick(len(in.Answers))]
}

// IntentNames lists the intents of a locale in corpus order.
func (l *Locale) IntentNames() []string {
	names := make([]string, 0, len(l.Intents))
	for _, in := range l.Intents {
		names = append(names, in.Name)
	}
	return names
}

func (c *Corpus) locale(name string) *Locale {
	l, ok := c.Locales[name]
	if !ok {
		l = &Locale{}
		c.Locales[name] = l
	}
	return l
}

// AddUtterance appends an example utterance, creating the intent if needed.
func (c *Corpus) AddUtterance(locale, intent, utterance string) {
	l := c.locale(locale)
	i := l.intentIndex(intent)
	l.Intents[i].Utterances = append(l.Intents[i].Utterances, utterance)
}

// AddAnswer appends an answer, creating the intent if needed.
func (c *Corpus) AddAnswer(locale, intent, answer string) {
	l := c.locale(locale)
	i := l.intentIndex(intent)
	l.Intents[i].Answers = append(l.Intents[i].Answers, answer)
}

// AddEntityOption registers an option of a named entity.
func (c *Corpus) AddEntityOption(locale, entity, value string, synonyms ...string) {
	l := c.locale(locale)
	for i := range l.Entities {
		if l.Entities[i].Name == entity {
			l.Entities[i].Options = append(l.Entities[i].Options, EntityOption{Value: value, Synonyms: synonyms})
			return
		}
	}
	l.Entities = append(l.Entities, NamedEntity{
		Name:    entity,
		Options: []EntityOption{{Value: value, Synonyms: synonyms}},
	})
}

func (l *Locale) intentIndex(name string) int {
	for i := range l.Intents {
		if l.Intents[i].Name == name {
			return i
		}
	}
	l.Intents = append(l.Intents, Intent{Name: name})
	return len(l.Intents) - 1
}
