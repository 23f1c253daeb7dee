// Package chart renders chunk aggregates as an interactive bar chart.
package chart

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/Zuo-Peng/reusevis/internal/chunk"
)

const DefaultTitle = "Average Quantity of Text Reuse by {words}-word Section"

type Options struct {
	Title      string
	PageTitle  string // defaults to Title
	Width      int    // pixels
	Height     int    // pixels
	Color      string // bar color
	SeriesName string
	AssetsHost string // echarts asset location; empty uses the go-echarts CDN
}

func DefaultOptions() Options {
	return Options{
		Title:      Title(DefaultTitle, 140),
		Width:      800,
		Height:     600,
		Color:      "#CAB2D6",
		SeriesName: "reuse",
	}
}

// Title expands {words} in tmpl with the chunk size.
func Title(tmpl string, words int) string {
	return strings.ReplaceAll(tmpl, "{words}", strconv.Itoa(words))
}

// echarts treats {a}, {b}, {c} in string formatters as placeholders.
var braceEscaper = strings.NewReplacer("{", "&#123;", "}", "&#125;")

// NewBar builds one bar per chunk, bar height the chunk's aggregate reuse and
// the chunk's formatted text as hover content. The text is trusted markup.
func NewBar(chunks []chunk.Chunk, o Options) *charts.Bar {
	o = withDefaults(o)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:  o.PageTitle,
			Width:      fmt.Sprintf("%dpx", o.Width),
			Height:     fmt.Sprintf("%dpx", o.Height),
			AssetsHost: o.AssetsHost,
		}),
		charts.WithTitleOpts(opts.Title{Title: o.Title}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Enterable: opts.Bool(true),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "chunk"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "reuse"}),
	)

	ids := make([]string, len(chunks))
	items := make([]opts.BarData, len(chunks))
	for i, c := range chunks {
		ids[i] = strconv.Itoa(c.ID)
		items[i] = opts.BarData{
			Name:  ids[i],
			Value: c.Frequency,
			Tooltip: &opts.Tooltip{
				Formatter: types.FuncStr(tooltip(c)),
			},
		}
	}

	bar.SetXAxis(ids).AddSeries(o.SeriesName, items,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: o.Color}),
	)
	return bar
}

func tooltip(c chunk.Chunk) string {
	return `<div style="max-width: 480px; white-space: normal">` + braceEscaper.Replace(c.Text) + "</div>"
}

// WritePage writes a standalone HTML page holding the chart.
func WritePage(w io.Writer, chunks []chunk.Chunk, o Options) error {
	if err := NewBar(chunks, o).Render(w); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// WriteFragments writes the chart's element markup and script, each followed
// by a newline, for embedding in a larger page. The page must load echarts.
func WriteFragments(w io.Writer, chunks []chunk.Chunk, o Options) error {
	snippet := NewBar(chunks, o).RenderSnippet()
	for _, part := range []string{snippet.Element, snippet.Script} {
		if _, err := io.WriteString(w, part); err != nil {
			return fmt.Errorf("write fragment: %w", err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("write fragment: %w", err)
		}
	}
	return nil
}

func withDefaults(o Options) Options {
	d := DefaultOptions()
	if o.Title == "" {
		o.Title = d.Title
	}
	if o.PageTitle == "" {
		o.PageTitle = o.Title
	}
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.Color == "" {
		o.Color = d.Color
	}
	if o.SeriesName == "" {
		o.SeriesName = d.SeriesName
	}
	return o
}
