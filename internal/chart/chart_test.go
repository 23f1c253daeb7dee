package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/reusevis/internal/chunk"
)

func sampleChunks() []chunk.Chunk {
	return []chunk.Chunk{
		{ID: 0, Frequency: 1.5, Text: "<div><span> Hello</span><span> there</span></div>", Words: 2},
		{ID: 1, Frequency: 4, Text: "<div><span> General</span><span> Kenobi</span></div>", Words: 2},
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Average Quantity of Text Reuse by 140-word Section", Title(DefaultTitle, 140))
	assert.Equal(t, "no placeholder", Title("no placeholder", 3))
}

func TestWritePage(t *testing.T) {
	var buf bytes.Buffer
	err := WritePage(&buf, sampleChunks(), Options{Title: "Reuse by 2-word Section"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "<html")
	assert.Contains(t, out, "echarts")
	assert.Contains(t, out, "Reuse by 2-word Section")
	assert.Contains(t, out, "Kenobi")
	assert.Contains(t, out, "#CAB2D6")
}

func TestWriteFragments(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFragments(&buf, sampleChunks(), Options{}))

	out := buf.String()
	assert.NotContains(t, out, "<html")
	assert.Contains(t, out, "<script")
	assert.Contains(t, out, "Kenobi")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestTooltipEscapesBraces(t *testing.T) {
	tip := tooltip(chunk.Chunk{Text: "<div>{b}</div>"})
	assert.NotContains(t, tip, "{b}")
	assert.Contains(t, tip, "&#123;b&#125;")
}

func TestWithDefaults(t *testing.T) {
	o := withDefaults(Options{})
	assert.Equal(t, 800, o.Width)
	assert.Equal(t, 600, o.Height)
	assert.Equal(t, "#CAB2D6", o.Color)
	assert.Equal(t, o.Title, o.PageTitle)
}
