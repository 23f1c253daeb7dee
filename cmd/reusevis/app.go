package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/reusevis/internal/chunk"
	"github.com/Zuo-Peng/reusevis/internal/config"
	"github.com/Zuo-Peng/reusevis/internal/dataset"
	"github.com/Zuo-Peng/reusevis/internal/reuse"
)

// app carries the loaded config and logger from the root command to its
// subcommands.
type app struct {
	configPath string
	logLevel   string
	logFile    string

	cfg     *config.Config
	logger  *slog.Logger
	cleanup func() error
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.logFile != "" {
		cfg.LogFile = a.logFile
	}

	a.cfg = cfg
	a.logger, a.cleanup = config.SetupLogger(cfg.LogFile, config.ParseLogLevel(cfg.LogLevel))
	return nil
}

func (a *app) close() error {
	if a.cleanup == nil {
		return nil
	}
	return a.cleanup()
}

// inputFlags are shared by every command that reads the dataset.
type inputFlags struct {
	table string
	words int
	names []string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.table, "table", "", "SQLite table holding the rows (default \"dialogue\")")
	cmd.Flags().IntVarP(&f.words, "words", "w", reuse.DefaultChunkSize, "Words per chunk")
	cmd.Flags().StringSliceVar(&f.names, "names", nil, "Proper nouns to capitalize (comma separated)")
}

// apply copies positional input and explicitly set flags over the config.
func (f *inputFlags) apply(cmd *cobra.Command, args []string, cfg *config.Config) {
	if len(args) > 0 {
		cfg.Input = args[0]
	}
	if cmd.Flags().Changed("table") {
		cfg.Table = f.table
	}
	if cmd.Flags().Changed("words") {
		cfg.Words = f.words
	}
	if cmd.Flags().Changed("names") {
		cfg.Names = f.names
	}
}

// analyze loads the dataset and aggregates it into chunks.
func (a *app) analyze(cfg *config.Config) ([]dataset.Row, []chunk.Chunk, error) {
	a.logger.Debug("loading dataset", "input", cfg.Input, "table", cfg.Table)
	rows, err := dataset.Load(cfg.Input, cfg.Table, cfg.Columns)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", cfg.Input, err)
	}

	chunks, err := reuse.Analyze(rows, cfg.ReuseOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("analyze: %w", err)
	}

	a.logger.Info("dataset aggregated",
		"input", cfg.Input,
		"rows", len(rows),
		"chunks", len(chunks),
		"words_per_chunk", cfg.Words,
	)
	return rows, chunks, nil
}
