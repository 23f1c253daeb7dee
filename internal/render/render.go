// Package render draws chunk text for terminals: speaker labels, scene
// breaks and per-word reuse shading.
package render

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/reusevis/internal/chunk"
	"github.com/Zuo-Peng/reusevis/internal/span"
)

var highlightColor = colorful.Color{R: 16.0 / 255, G: 96.0 / 255, B: 1}

var (
	styleSpeaker = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	styleScene   = lipgloss.NewStyle().Faint(true)
	styleWord    = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
)

type Options struct {
	Width      int    // wrap width (0 = no wrap)
	Background string // terminal background the shading blends from, hex
}

// Shade returns the background color for a word of the given intensity.
func Shade(intensity float64, background string) lipgloss.Color {
	base, err := colorful.Hex(background)
	if err != nil {
		base = colorful.Color{}
	}
	return lipgloss.Color(base.BlendRgb(highlightColor, intensity).Clamped().Hex())
}

// Chunk renders a chunk's spans. Each speaker turn starts a new line; long
// turns wrap at Width visible columns.
func Chunk(c chunk.Chunk, opts Options) string {
	if opts.Background == "" {
		opts.Background = "#000000"
	}

	var lines []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
		}
	}

	for _, s := range c.Spans {
		if s.NewScene {
			flush()
			lines = append(lines, styleScene.Render("-- next scene --"))
		}
		if s.NewSpeaker {
			flush()
			cur.WriteString(styleSpeaker.Render(s.Speaker + ":"))
		}
		cur.WriteString(word(s, opts.Background))
	}
	flush()

	var b strings.Builder
	for _, l := range lines {
		for _, wl := range wrapLine(l, opts.Width) {
			b.WriteString(wl)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func word(s span.Span, background string) string {
	if s.Highlight <= 0 {
		return styleWord.Render(s.Text)
	}
	lead := ""
	text := s.Text
	if !s.Glued && strings.HasPrefix(text, " ") {
		lead, text = " ", text[1:]
	}
	return lead + styleWord.Background(Shade(s.Highlight, background)).Render(text)
}

// PlainText returns the chunk's words without markup or color.
func PlainText(c chunk.Chunk) string {
	var b strings.Builder
	for _, s := range c.Spans {
		if s.NewSpeaker {
			if b.Len() > 0 {
				b.WriteString(" ")
			}
			b.WriteString(s.Speaker + ":")
		}
		b.WriteString(s.Text)
	}
	return strings.TrimSpace(b.String())
}

// Excerpt truncates s to width display columns.
func Excerpt(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}
