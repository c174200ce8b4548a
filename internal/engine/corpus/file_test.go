package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models", "model.yaml")
	c := sample()
	c.Timezone = "Europe/Paris"

	require.NoError(t, c.Save(path))
	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, c.DefaultLocale, got.DefaultLocale)
	assert.Equal(t, c.Timezone, got.Timezone)
	assert.Equal(t, c.Locales, got.Locales)
}

func TestLoad_UnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_locale: en\nfoo: bar\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestImport_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.csv")
	data := "kind,locale,name,text\n" +
		"utterance,,greet,hello\n" +
		"utterance,fr,greet,salut\n" +
		"answer,en,greet,Hi!\n" +
		"entity,en,city,Paris|paname|city of light\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := Import(path, "en")
	require.NoError(t, err)

	assert.Equal(t, "en", c.DefaultLocale)
	assert.Equal(t, []Intent{{Name: "greet", Utterances: []string{"hello"}, Answers: []string{"Hi!"}}}, c.Locales["en"].Intents)
	assert.Equal(t, []string{"salut"}, c.Locales["fr"].Intents[0].Utterances)
	assert.Equal(t, []NamedEntity{{Name: "city", Options: []EntityOption{
		{Value: "Paris", Synonyms: []string{"paname", "city of light"}},
	}}}, c.Locales["en"].Entities)
}

func TestImport_CSVInvalid(t *testing.T) {
	dir := t.TempDir()

	unknown := filepath.Join(dir, "unknown.csv")
	require.NoError(t, os.WriteFile(unknown, []byte("other,en,greet,hello\n"), 0o644))
	_, err := Import(unknown, "en")
	require.ErrorIs(t, err, ErrInvalidRow)

	short := filepath.Join(dir, "short.csv")
	require.NoError(t, os.WriteFile(short, []byte("utterance,en,greet\n"), 0o644))
	_, err = Import(short, "en")
	require.ErrorIs(t, err, ErrInvalidRow)
}

func TestImport_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", SheetIntents))
	require.NoError(t, f.SetSheetRow(SheetIntents, "A1", &[]any{"locale", "intent", "utterance"}))
	require.NoError(t, f.SetSheetRow(SheetIntents, "A2", &[]any{"en", "greet", "hello"}))
	require.NoError(t, f.SetSheetRow(SheetIntents, "A3", &[]any{"", "greet", "hey"}))
	_, err := f.NewSheet(SheetAnswers)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(SheetAnswers, "A1", &[]any{"locale", "intent", "answer"}))
	require.NoError(t, f.SetSheetRow(SheetAnswers, "A2", &[]any{"en", "greet", "/Greeting"}))
	_, err = f.NewSheet(SheetEntities)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(SheetEntities, "A1", &[]any{"locale", "entity", "option", "synonyms"}))
	require.NoError(t, f.SetSheetRow(SheetEntities, "A2", &[]any{"en", "size", "large", "big, huge"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	c, err := Import(path, "en")
	require.NoError(t, err)

	greet, ok := c.Locales["en"].Intent("greet")
	require.True(t, ok)
	assert.Equal(t, []string{"hello", "hey"}, greet.Utterances)
	assert.Equal(t, []string{"/Greeting"}, greet.Answers)
	assert.Equal(t, []string{"big", "huge"}, c.Locales["en"].Entities[0].Options[0].Synonyms)
}

func TestImport_XLSXMissingIntents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := Import(path, "en")
	require.ErrorIs(t, err, ErrMissingSheet)
}

func TestImport_Unsupported(t *testing.T) {
	_, err := Import("corpus.json", "en")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}
