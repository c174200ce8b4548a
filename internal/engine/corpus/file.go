package corpus

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a corpus written by Save.
func Load(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decodeYAML(data)
}

func decodeYAML(data []byte) (*Corpus, error) {
	c := New("")
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return nil, fmt.Errorf("decode corpus: %w", err)
	}
	if c.Locales == nil {
		c.Locales = map[string]*Locale{}
	}
	return c, nil
}

// Save writes the corpus as YAML, replacing the file atomically.
func (c *Corpus) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode corpus: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Import reads a corpus from a .yaml, .yml, .csv or .xlsx file.
// Tabular formats take their default locale from defaultLocale.
func Import(path, defaultLocale string) (*Corpus, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		c, err := Load(path)
		if err != nil {
			return nil, err
		}
		if c.DefaultLocale == "" {
			c.DefaultLocale = defaultLocale
		}
		return c, nil
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return readCSV(f, defaultLocale)
	case ".xlsx":
		return readXLSX(path, defaultLocale)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
