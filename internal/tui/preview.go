package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zuo-Peng/reusevis/internal/chunk"
	"github.com/Zuo-Peng/reusevis/internal/render"
)

// previewRenderedMsg is sent when an async chunk render completes.
type previewRenderedMsg struct {
	chunkID int
	width   int
	content string
}

// loadPreviewCmd renders the chunk text off the update loop.
func loadPreviewCmd(c chunk.Chunk, width int) tea.Cmd {
	return func() tea.Msg {
		header := fmt.Sprintf("chunk %d  words=%d  reuse=%.3f\n\n", c.ID, c.Words, c.Frequency)
		return previewRenderedMsg{
			chunkID: c.ID,
			width:   width,
			content: header + render.Chunk(c, render.Options{Width: width}),
		}
	}
}

func newViewport(width, height int) viewport.Model {
	return viewport.New(width, height)
}
