// Package span turns dialogue rows into styled HTML fragments, one per word.
package span

import (
	"fmt"
	"html"
	"math"
	"strings"
)

// HighlightRGB is the color behind highlighted words; intensity sets its alpha.
const HighlightRGB = "16, 96, 255"

// LineBreak marks a span that must start a new line (speaker change).
const LineBreak = "\n"

const sceneBreak = "-- next scene --<br />"

// Span is the formatted fragment for one dialogue row.
type Span struct {
	Markup     string
	Text       string // displayed word, with its leading space unless Glued
	Speaker    string // uppercased label, set only when NewSpeaker
	NewSpeaker bool
	NewScene   bool
	Glued      bool // punctuation or contraction attached to the previous word
	Highlight  float64
}

func (s Span) String() string {
	return s.Markup
}

// Breakable reports whether the span begins with whitespace, so a line may
// wrap before it.
func (s Span) Breakable() bool {
	return s.NewSpeaker || !s.Glued
}

// ForcesBreak reports whether the span carries the speaker line break.
func (s Span) ForcesBreak() bool {
	return strings.Contains(s.Markup, LineBreak)
}

func plain(content string) string {
	return "<span>" + content + "</span>"
}

func highlighted(content string, intensity float64) string {
	return fmt.Sprintf(`<span style="background-color: rgba(%s, %.3f)">%s</span>`,
		HighlightRGB, clamp(intensity), content)
}

func speakerLabel(name string) string {
	return LineBreak + plain("<b> "+html.EscapeString(name)+": </b>")
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
