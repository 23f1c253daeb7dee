// Package tui is an interactive browser over chunk aggregates: a scored list
// of chunks on the left and the selected chunk's shaded dialogue on the right.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zuo-Peng/reusevis/internal/chunk"
)

type model struct {
	title      string
	chunks     []chunk.Chunk
	maxFreq    float64
	cursor     int
	listOffset int
	preview    viewport.Model
	previewKey string // "chunkID:width" of the rendered preview
	width      int
	height     int
	ready      bool
	quitting   bool
}

func newModel(title string, chunks []chunk.Chunk) model {
	m := model{
		title:   title,
		chunks:  chunks,
		preview: viewport.New(0, 0),
	}
	for _, c := range chunks {
		if c.Frequency > m.maxFreq {
			m.maxFreq = c.Frequency
		}
	}
	return m
}

// Run starts the browser and blocks until it exits.
func Run(title string, chunks []chunk.Chunk) error {
	p := tea.NewProgram(newModel(title, chunks), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.preview = newViewport(m.previewWidth(), m.panelHeight())
		m.previewKey = ""
		return m, m.loadCurrentPreview()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Up):
			return m.moveCursor(m.cursor - 1)

		case key.Matches(msg, keys.Down):
			return m.moveCursor(m.cursor + 1)

		case key.Matches(msg, keys.Top):
			return m.moveCursor(0)

		case key.Matches(msg, keys.Bottom):
			return m.moveCursor(len(m.chunks) - 1)

		case key.Matches(msg, keys.PreviewUp):
			m.preview.LineUp(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PreviewDn):
			m.preview.LineDown(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PageUp):
			m.preview.LineUp(m.panelHeight())
			return m, nil

		case key.Matches(msg, keys.PageDown):
			m.preview.LineDown(m.panelHeight())
			return m, nil
		}
		return m, nil

	case tea.MouseMsg:
		if !m.ready || len(m.chunks) == 0 {
			return m, nil
		}
		inList := msg.X <= m.listWidth()+1
		switch {
		case inList && msg.Button == tea.MouseButtonWheelUp:
			return m.moveCursor(m.cursor - 1)
		case inList && msg.Button == tea.MouseButtonWheelDown:
			return m.moveCursor(m.cursor + 1)
		case !inList:
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
		return m, nil

	case previewRenderedMsg:
		k := previewCacheKey(msg.chunkID, msg.width)
		if len(m.chunks) == 0 || k != previewCacheKey(m.chunks[m.cursor].ID, m.previewWidth()) {
			return m, nil // stale
		}
		m.preview.SetContent(msg.content)
		m.preview.GotoTop()
		m.previewKey = k
		return m, nil
	}

	return m, nil
}

func (m model) moveCursor(to int) (tea.Model, tea.Cmd) {
	if to < 0 || to >= len(m.chunks) || to == m.cursor {
		return m, nil
	}
	m.cursor = to
	m.adjustListScroll()
	return m, m.loadCurrentPreview()
}

// adjustListScroll keeps the cursor inside the visible part of the list.
func (m *model) adjustListScroll() {
	visible := m.panelHeight() - 1 // header row
	if visible < 1 {
		visible = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visible {
		m.listOffset = m.cursor - visible + 1
	}
}

func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	listW := m.listWidth()
	previewW := m.previewWidth()
	panelH := m.panelHeight()

	titleRow := styleHeader.Render(m.title)

	listPanel := stylePanelBorder.
		Width(listW).
		Height(panelH).
		Render(m.renderList(listW, panelH))

	m.preview.Width = previewW
	m.preview.Height = panelH
	previewPanel := styleActiveBorder.
		Width(previewW).
		Height(panelH).
		Render(m.preview.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, previewPanel)
	return lipgloss.JoinVertical(lipgloss.Left, titleRow, panels, m.statusBar())
}

func (m model) listWidth() int {
	if m.width <= 0 {
		return 30
	}
	w := m.width*30/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) previewWidth() int {
	if m.width <= 0 {
		return 60
	}
	w := m.width*70/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// title row (1) + status bar (1) + borders (4)
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

func (m model) statusBar() string {
	parts := []string{
		fmt.Sprintf("%d chunks", len(m.chunks)),
		"up/dn navigate",
		"C-u/C-d scroll text",
		"Esc quit",
	}
	return styleStatusBar.Render(strings.Join(parts, " | "))
}

func (m model) loadCurrentPreview() tea.Cmd {
	if len(m.chunks) == 0 || m.cursor >= len(m.chunks) {
		return nil
	}
	c := m.chunks[m.cursor]
	if previewCacheKey(c.ID, m.previewWidth()) == m.previewKey {
		return nil
	}
	return loadPreviewCmd(c, m.previewWidth())
}

func previewCacheKey(chunkID, width int) string {
	return fmt.Sprintf("%d:%d", chunkID, width)
}
