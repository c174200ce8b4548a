package corpus

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"nlu-router/internal/recognizer"
	"nlu-router/pkg/datemath"
)

// Extractor resolves named and built-in entities from utterances.
// It is built once per trained corpus and is safe for concurrent use.
type Extractor struct {
	byLocale map[string][]optionMatcher
	dates    *datemath.Parser
	now      func() time.Time
}

// nonWord is a Unicode-aware word separator. RE2's \b only knows ASCII, so
// "café" would never end on a boundary.
const nonWord = `[^\p{L}\p{M}\p{N}_]`

type optionMatcher struct {
	entity string
	value  string
	re     *regexp.Regexp
}

// NewExtractor compiles matchers for every entity option of the corpus.
func NewExtractor(c *Corpus) (*Extractor, error) {
	tz := c.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	dates, err := datemath.NewParser(tz)
	if err != nil {
		return nil, err
	}

	x := &Extractor{
		byLocale: make(map[string][]optionMatcher, len(c.Locales)),
		dates:    dates,
		now:      time.Now,
	}
	for name, l := range c.Locales {
		var ms []optionMatcher
		for _, ne := range l.Entities {
			for _, opt := range ne.Options {
				texts := append([]string{opt.Value}, opt.Synonyms...)
				// Longer texts first so "new york city" wins over "new york".
				sort.Slice(texts, func(i, j int) bool { return len(texts[i]) > len(texts[j]) })
				quoted := make([]string, 0, len(texts))
				for _, t := range texts {
					if t = strings.TrimSpace(t); t != "" {
						quoted = append(quoted, regexp.QuoteMeta(t))
					}
				}
				if len(quoted) == 0 {
					continue
				}
				ms = append(ms, optionMatcher{
					entity: ne.Name,
					value:  opt.Value,
					re:     regexp.MustCompile(`(?i)(?:^|` + nonWord + `)(` + strings.Join(quoted, "|") + `)(?:$|` + nonWord + `)`),
				})
			}
		}
		x.byLocale[name] = ms
	}
	return x, nil
}

// Extract returns the entities found in the utterance, in text order.
// Enumerated entities resolve to the option value; dates to YYYY-MM-DD.
func (x *Extractor) Extract(locale, utterance string) []recognizer.Entity {
	type found struct {
		at int
		e  recognizer.Entity
	}
	var hits []found

	for _, m := range x.byLocale[locale] {
		loc := m.re.FindStringSubmatchIndex(utterance)
		if loc == nil {
			continue
		}
		hits = append(hits, found{at: loc[2], e: recognizer.Entity{
			Entity:     m.entity,
			Option:     m.value,
			SourceText: utterance[loc[2]:loc[3]],
			Accuracy:   1,
		}})
	}

	if d, ok := x.dates.Find(utterance, x.now()); ok {
		hits = append(hits, found{at: strings.Index(strings.ToLower(utterance), strings.ToLower(d.Text)), e: recognizer.Entity{
			Entity:     EntityDate,
			Option:     d.Time.Format(DateLayout),
			SourceText: d.Text,
			Accuracy:   1,
		}})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].at < hits[j].at })
	out := make([]recognizer.Entity, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.e)
	}
	return out
}
