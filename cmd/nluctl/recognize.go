package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nlu-router/internal/bootstrap"
	"nlu-router/internal/model"
	"nlu-router/internal/recognizer"
	"nlu-router/internal/recognizer/usecase"
)

// CLIChannelID scopes contexts written by nluctl.
const CLIChannelID = "cli"

var (
	recLocale         string
	recConversationID string
)

var recognizeCmd = &cobra.Command{
	Use:   "recognize <text>",
	Short: "Recognize an utterance",
	Long: `Recognize an utterance with the trained model and print the result as JSON.

The conversation context is read from and saved to the configured context store,
so repeated calls with the same --conversation accumulate entities.

Examples:
  nluctl recognize "book a table for tomorrow"
  nluctl recognize --locale fr "réserver une table"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRecognize,
}

func init() {
	recognizeCmd.Flags().StringVar(&recLocale, "locale", "", "utterance locale (default: recognizer.default_locale)")
	recognizeCmd.Flags().StringVar(&recConversationID, "conversation", "default", "conversation id used to scope context")
}

type recognizeOutput struct {
	Key         string            `json:"key"`
	Result      recognizer.Result `json:"result"`
	Persistence string            `json:"persistence"`
	Warning     string            `json:"warning,omitempty"`
}

func runRecognize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	l := bootstrap.Logger(cfg)

	eng, err := bootstrap.NewEngine(cfg, l)
	if err != nil {
		return err
	}
	if err := eng.Model.Load(ctx, cfg.Engine.ModelPath); err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	repo, err := bootstrap.NewContextStore(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer repo.Close()

	uc, err := usecase.New(eng.Guard, repo, l, cfg.Recognizer.Threshold)
	if err != nil {
		return err
	}

	turn := model.Turn{
		Message: &model.Message{Text: strings.Join(args, " "), Locale: recLocale},
		Locale:  recLocale,
		Address: model.Address{ChannelID: CLIChannelID, ConversationID: recConversationID},
	}
	rec, err := uc.Recognize(ctx, turn)
	if err != nil {
		return err
	}

	out := recognizeOutput{
		Key:         turn.Address.Key(),
		Result:      rec.Result,
		Persistence: rec.Persistence.String(),
	}
	switch {
	case rec.PersistErr != nil:
		out.Warning = rec.PersistErr.Error()
	case rec.LoadErr != nil:
		out.Warning = rec.LoadErr.Error()
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
