// Package main implements nluctl, the CLI for training the recognition model and
// trying utterances against it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nlu-router/config"
)

var (
	// configPath overrides the config.yaml search path
	configPath string
	version    = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "nluctl",
	Short: "Train and query the NLU router model",
	Long: `nluctl manages the recognition model used by the NLU router.
It imports corpora, retrains the engine, and recognizes utterances from the shell.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: search ./config, ., /etc/app/)")
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(recognizeCmd)
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
