package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/reusevis/internal/chunk"
)

// renderList renders the left panel: one line per chunk with a bar gauge.
func (m model) renderList(width, height int) string {
	if len(m.chunks) == 0 {
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No chunks")
	}

	lines := []string{styleHeader.Render(runewidth.FillRight(" chunk   reuse", width))}
	for i := m.listOffset; i < len(m.chunks) && len(lines) < height; i++ {
		lines = append(lines, formatChunkLine(m.chunks[i], m.maxFreq, width, i == m.cursor))
	}

	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

// formatChunkLine formats a chunk as
//
//	[>] id  frequency  ████
func formatChunkLine(c chunk.Chunk, maxFreq float64, width int, selected bool) string {
	prefix := "  "
	style := styleListNormal
	if selected {
		prefix = "> "
		style = styleListSelected
	}

	label := fmt.Sprintf("%s%5d %7.3f ", prefix, c.ID, c.Frequency)
	barW := width - runewidth.StringWidth(label)
	if barW < 0 {
		barW = 0
	}
	n := 0
	if maxFreq > 0 {
		n = int(float64(barW) * c.Frequency / maxFreq)
	}
	if n > barW {
		n = barW
	}

	line := style.Render(label) + styleBar.Render(strings.Repeat("█", n))
	return line + strings.Repeat(" ", barW-n)
}
