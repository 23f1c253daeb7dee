package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/reusevis/internal/chart"
	"github.com/Zuo-Peng/reusevis/internal/chunk"
)

func renderCmd(a *app) *cobra.Command {
	var in inputFlags
	var static bool
	var output, title string

	cmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Render the reuse bar chart as HTML",
		Long: `Reads a dialogue table (CSV, or a SQLite database with --table), groups it
into fixed-size word chunks and writes a bar chart whose hover text shows each
chunk's dialogue shaded by reuse.

Without --static the output holds the chart element and script only, for
embedding in a page that already loads echarts.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			in.apply(cmd, args, cfg)
			if cmd.Flags().Changed("static") {
				cfg.Static = static
			}
			if cmd.Flags().Changed("output") {
				cfg.Output = output
			}
			if cmd.Flags().Changed("title") {
				cfg.Title = title
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			_, chunks, err := a.analyze(cfg)
			if err != nil {
				return err
			}

			opts := cfg.ChartOptions()
			err = writeAtomic(cfg.Output, func(w io.Writer) error {
				if cfg.Static {
					return chart.WritePage(w, chunks, opts)
				}
				return chart.WriteFragments(w, chunks, opts)
			})
			if err != nil {
				return fmt.Errorf("write %s: %w", cfg.Output, err)
			}

			a.logger.Info("chart written",
				"output", cfg.Output,
				"static", cfg.Static,
				"title", opts.Title,
				"chunks", len(chunks),
				"max_reuse", maxFrequency(chunks),
			)
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().BoolVarP(&static, "static", "s", false, "Save a full standalone HTML page")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default \"star-wars-reuse.html\")")
	cmd.Flags().StringVar(&title, "title", "", "Chart title; {words} expands to the chunk size")

	return cmd
}

// writeAtomic writes to a temp file next to path and renames it into place,
// so a failed render never leaves partial output.
func writeAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".reusevis-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func maxFrequency(chunks []chunk.Chunk) float64 {
	var m float64
	for _, c := range chunks {
		if c.Frequency > m {
			m = c.Frequency
		}
	}
	return m
}
