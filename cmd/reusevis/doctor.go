package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/reusevis/internal/config"
	"github.com/Zuo-Peng/reusevis/internal/dataset"
	"github.com/Zuo-Peng/reusevis/internal/reuse"
)

func doctorCmd(a *app) *cobra.Command {
	var in inputFlags

	cmd := &cobra.Command{
		Use:   "doctor [input]",
		Short: "Self-check: verify config, input columns and output path, and show stats",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			in.apply(cmd, args, cfg)

			fmt.Println("=== Config ===")
			path := a.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			if _, err := os.Stat(path); err != nil {
				fmt.Printf("  File: %s (not found, using defaults)\n", path)
			} else {
				fmt.Printf("  File: %s (OK)\n", path)
			}
			if err := cfg.Validate(); err != nil {
				fmt.Printf("  Status: %v\n", err)
			} else {
				fmt.Println("  Status: OK")
			}

			fmt.Println("\n=== Input ===")
			fmt.Printf("  Path: %s\n", cfg.Input)
			rows, err := dataset.Load(cfg.Input, cfg.Table, cfg.Columns)
			switch {
			case errors.Is(err, os.ErrNotExist):
				fmt.Println("  Status: NOT FOUND")
				return nil
			case errors.Is(err, dataset.ErrColumnNotFound):
				fmt.Printf("  Status: MISSING COLUMN (%v)\n", err)
				fmt.Printf("  Expected: %q, %q, %q, %q\n",
					cfg.Columns.Word, cfg.Columns.Character, cfg.Columns.Scene, cfg.Columns.Frequency)
				return nil
			case err != nil:
				fmt.Printf("  Status: %v\n", err)
				return nil
			}
			fmt.Println("  Status: OK")

			fmt.Println("\n=== Chunks ===")
			chunks, err := reuse.Analyze(rows, cfg.ReuseOptions())
			if err != nil {
				fmt.Printf("  Error: %v\n", err)
				return nil
			}
			sum := reuse.Summarize(rows, chunks)
			fmt.Printf("  Words per chunk: %d\n", cfg.Words)
			fmt.Printf("  Rows:     %d\n", sum.Rows)
			fmt.Printf("  Chunks:   %d\n", sum.Chunks)
			fmt.Printf("  Speakers: %d\n", sum.Speakers)
			fmt.Printf("  Scenes:   %d\n", sum.Scenes)
			if sum.Chunks > 0 {
				fmt.Printf("  Reuse:    %.3f .. %.3f\n", sum.MinFrequency, sum.MaxFrequency)
			}

			fmt.Println("\n=== Output ===")
			fmt.Printf("  Path: %s\n", cfg.Output)
			checkDir("Directory", filepath.Dir(cfg.Output))
			mode := "fragments (element + script)"
			if cfg.Static {
				mode = "standalone page"
			}
			fmt.Printf("  Mode: %s\n", mode)

			a.logger.Debug("doctor finished", "summary", sum.String())
			return nil
		},
	}

	in.register(cmd)
	return cmd
}

func checkDir(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else if !info.IsDir() {
		fmt.Printf("  %s: %s (NOT A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}
