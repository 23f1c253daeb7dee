package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/Zuo-Peng/reusevis/internal/chart"
	"github.com/Zuo-Peng/reusevis/internal/chunk"
	"github.com/Zuo-Peng/reusevis/internal/render"
	"github.com/Zuo-Peng/reusevis/internal/tui"
)

type chunkRecord struct {
	ID        int     `json:"id" yaml:"id"`
	Frequency float64 `json:"frequency" yaml:"frequency"`
	Words     int     `json:"words" yaml:"words"`
	Text      string  `json:"text" yaml:"text"`
}

func chunksCmd(a *app) *cobra.Command {
	var in inputFlags
	var format string
	var plain bool
	var width int

	cmd := &cobra.Command{
		Use:   "chunks [input]",
		Short: "Browse per-chunk reuse scores and dialogue",
		Long: `Opens a terminal browser over the chunks when stdout is a terminal.
Otherwise prints one record per chunk (tsv, json or yaml):
  id, frequency, words, text`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			in.apply(cmd, args, cfg)
			if cmd.Flags().Changed("format") {
				cfg.Format = format
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			_, chunks, err := a.analyze(cfg)
			if err != nil {
				return err
			}

			// Interactive browser when stdout is a terminal; records for pipes
			if !plain && term.IsTerminal(int(os.Stdout.Fd())) {
				return tui.Run(chart.Title(cfg.Title, cfg.Words), chunks)
			}
			return writeRecords(os.Stdout, chunks, cfg.Format, width)
		},
	}

	in.register(cmd)
	cmd.Flags().StringVar(&format, "format", "tsv", "Output format when not on a terminal (tsv/json/yaml)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print records even on a terminal")
	cmd.Flags().IntVar(&width, "width", 0, "Truncate tsv text to this many columns (0 = full)")

	return cmd
}

func writeRecords(w io.Writer, chunks []chunk.Chunk, format string, width int) error {
	records := make([]chunkRecord, len(chunks))
	for i, c := range chunks {
		records[i] = chunkRecord{
			ID:        c.ID,
			Frequency: c.Frequency,
			Words:     c.Words,
			Text:      render.PlainText(c),
		}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(records)
	case "tsv", "":
		for _, r := range records {
			text := strings.ReplaceAll(r.Text, "\t", " ")
			text = strings.ReplaceAll(text, "\n", " ")
			if _, err := fmt.Fprintf(w, "%d\t%.4f\t%d\t%s\n",
				r.ID, r.Frequency, r.Words, render.Excerpt(text, width)); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
