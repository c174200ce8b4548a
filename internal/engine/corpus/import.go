package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// readCSV parses rows of kind,locale,name,text with a header line.
// Entity rows carry "value|synonym|synonym" in the text column.
func readCSV(r io.Reader, defaultLocale string) (*Corpus, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 4
	cr.TrimLeadingSpace = true

	c := New(defaultLocale)
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRow, err)
		}
		line++
		if line == 1 && strings.EqualFold(rec[0], "kind") {
			continue
		}
		locale := orDefault(rec[1], defaultLocale)
		name, text := strings.TrimSpace(rec[2]), strings.TrimSpace(rec[3])
		if name == "" || text == "" {
			return nil, fmt.Errorf("%w: line %d", ErrInvalidRow, line)
		}
		switch strings.ToLower(strings.TrimSpace(rec[0])) {
		case KindUtterance:
			c.AddUtterance(locale, name, text)
		case KindAnswer:
			c.AddAnswer(locale, name, text)
		case KindEntity:
			parts := strings.Split(text, "|")
			c.AddEntityOption(locale, name, strings.TrimSpace(parts[0]), trimAll(parts[1:])...)
		default:
			return nil, fmt.Errorf("%w: line %d: unknown kind %q", ErrInvalidRow, line, rec[0])
		}
	}
	return c, nil
}

// readXLSX reads the Intents (locale, intent, utterance), Answers
// (locale, intent, answer) and Entities (locale, entity, option, synonyms)
// sheets. The first row of each sheet is a header. Answers and Entities
// are optional.
func readXLSX(path, defaultLocale string) (*Corpus, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c := New(defaultLocale)

	rows, err := f.GetRows(SheetIntents)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingSheet, SheetIntents)
	}
	for i, row := range skipHeader(rows) {
		if len(row) < 3 {
			return nil, fmt.Errorf("%w: %s row %d", ErrInvalidRow, SheetIntents, i+2)
		}
		c.AddUtterance(orDefault(row[0], defaultLocale), strings.TrimSpace(row[1]), strings.TrimSpace(row[2]))
	}

	if rows, err := f.GetRows(SheetAnswers); err == nil {
		for i, row := range skipHeader(rows) {
			if len(row) < 3 {
				return nil, fmt.Errorf("%w: %s row %d", ErrInvalidRow, SheetAnswers, i+2)
			}
			c.AddAnswer(orDefault(row[0], defaultLocale), strings.TrimSpace(row[1]), strings.TrimSpace(row[2]))
		}
	}

	if rows, err := f.GetRows(SheetEntities); err == nil {
		for i, row := range skipHeader(rows) {
			if len(row) < 3 {
				return nil, fmt.Errorf("%w: %s row %d", ErrInvalidRow, SheetEntities, i+2)
			}
			var syn []string
			if len(row) > 3 && row[3] != "" {
				syn = trimAll(strings.Split(row[3], ","))
			}
			c.AddEntityOption(orDefault(row[0], defaultLocale), strings.TrimSpace(row[1]), strings.TrimSpace(row[2]), syn...)
		}
	}
	return c, nil
}

func skipHeader(rows [][]string) [][]string {
	var out [][]string
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		out = append(out, row)
	}
	return out
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}

func trimAll(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
