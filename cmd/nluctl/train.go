package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nlu-router/internal/bootstrap"
	"nlu-router/internal/engine"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Retrain the engine from the saved model",
	Long: `Retrain the configured engine from the corpus saved at engine.model_path.

For the vector engine this rebuilds the Qdrant collection.

Examples:
  nluctl train
  nluctl train --config ./config/config.yaml`,
	Args: cobra.NoArgs,
	RunE: runTrain,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a corpus, train, and save it as the model",
	Long: `Import a corpus file, train the engine on it and save it to engine.model_path.

Supported formats: .yaml, .yml, .csv, .xlsx

Examples:
  nluctl import corpus.yaml
  nluctl import utterances.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Engine.ModelPath == "" {
		return engine.ErrNoModelPath
	}

	eng, err := bootstrap.NewEngine(cfg, bootstrap.Logger(cfg))
	if err != nil {
		return err
	}
	if err := eng.Model.Load(cmd.Context(), cfg.Engine.ModelPath); err != nil {
		return fmt.Errorf("train from %s: %w", cfg.Engine.ModelPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Trained %s engine from %s\n", cfg.Engine.Kind, cfg.Engine.ModelPath)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	eng, err := bootstrap.NewEngine(cfg, bootstrap.Logger(cfg))
	if err != nil {
		return err
	}
	if err := eng.Model.Import(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("import %s: %w", args[0], err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %s, model saved to %s\n", args[0], cfg.Engine.ModelPath)
	return nil
}
