// Package main provides the explorer command-line tool for the heritage open-house dataset.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"jepdash/internal/config"
	"jepdash/internal/dataset"
	"jepdash/internal/logger"
	"jepdash/internal/normalizer"
)

const defaultConfigPath = "configs/explorer.yaml"

// app holds the state shared by every subcommand.
type app struct {
	configPath  string
	datasetPath string
	logLevel    string

	cfg *config.Config
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "explorer",
		Short: "Explore the heritage open-house events dataset",
		Long: `Explorer loads the open-house events table, derives opening hours,
weekday, event type and pricing for every row, and reports category
counts and filtered selections.

Settings come from a YAML or TOML file, then from JEP_* environment
variables (a .env file is read first), then from flags.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to YAML or TOML configuration file (default: "+defaultConfigPath+" when present)")
	rootCmd.PersistentFlags().StringVarP(&a.datasetPath, "dataset", "d", "", "Path to the dataset, overrides the configuration")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(
		a.enrichCmd(),
		a.statsCmd(),
		a.filterCmd(),
		a.optionsCmd(),
		a.reportCmd(),
		a.verifyCmd(),
		a.configCmd(),
		a.formatCmd(),
	)

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// setup resolves the configuration and the logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	envErr := godotenv.Load()

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	if a.datasetPath != "" {
		cfg.Dataset.Path = a.datasetPath
	}

	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.cfg = cfg
	a.log = logger.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)

	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		a.log.Warn("failed to read .env file", "error", envErr)
	}

	a.log.Debug("configuration loaded", "config", cfg.String())

	return nil
}

func (a *app) loadConfig() (*config.Config, error) {
	path := a.configPath
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err != nil {
			cfg := config.Default()
			cfg.ApplyEnv()

			return cfg, nil
		}

		path = defaultConfigPath
	}

	return config.LoadConfig(path)
}

// enriched loads the dataset and derives its fields.
func (a *app) enriched(ctx context.Context) (*dataset.Dataset, error) {
	ds, err := dataset.NewLoader(a.cfg.Dataset, a.log).Load(ctx)
	if err != nil {
		return nil, err
	}

	return normalizer.NewProcessor(a.log).Process(ds)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	return enc.Encode(v)
}
