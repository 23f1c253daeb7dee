package span

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/reusevis/internal/dataset"
)

func rowsOf(words, chars, scenes []string, freqs []float64) []dataset.Row {
	rows := make([]dataset.Row, len(words))
	for i := range words {
		rows[i] = dataset.Row{Index: i, Word: words[i], Character: chars[i], Scene: scenes[i]}
		if freqs != nil {
			rows[i].ReuseFrequency = freqs[i]
		}
	}
	return rows
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}

func TestSpeakerChanges(t *testing.T) {
	rows := rowsOf(repeat("w", 5), []string{"A", "A", "B", "B", "A"}, repeat("1", 5), nil)
	assert.Equal(t, []bool{true, false, true, false, true}, SpeakerChanges(rows))
}

func TestSceneChanges(t *testing.T) {
	rows := rowsOf(repeat("w", 5), repeat("A", 5), []string{"1", "1", "2", "2", "2"}, nil)
	assert.Equal(t, []bool{false, false, true, false, false}, SceneChanges(rows))
}

func TestPairsFirstRowHasNoPrevious(t *testing.T) {
	rows := rowsOf([]string{"a", "b", "c"}, repeat("A", 3), repeat("1", 3), nil)

	var prevs []string
	for cur, prev := range Pairs(rows) {
		if prev == nil {
			prevs = append(prevs, "<nil>:"+cur.Word)
			continue
		}
		prevs = append(prevs, prev.Word+":"+cur.Word)
	}
	assert.Equal(t, []string{"<nil>:a", "a:b", "b:c"}, prevs)
}

func TestChunkOfBoundary(t *testing.T) {
	assert.Equal(t, 0, ChunkOf(0, 140))
	assert.Equal(t, 0, ChunkOf(139, 140))
	assert.Equal(t, 1, ChunkOf(140, 140))
	assert.Equal(t, 1, ChunkOf(279, 140))
	assert.Equal(t, 2, ChunkOf(280, 140))
}

func TestHighlightsNormalizePerChunk(t *testing.T) {
	freqs := []float64{1, 4, 2, 0, 0, 0, 5, 10}
	rows := rowsOf(repeat("w", 8), repeat("A", 8), repeat("1", 8), freqs)

	got, err := Highlights(rows, 3)
	require.NoError(t, err)

	assert.Equal(t, []float64{0.25, 1, 0.5, 0, 0, 0, 0.5, 1}, got)
	for _, h := range got {
		assert.GreaterOrEqual(t, h, 0.0)
		assert.LessOrEqual(t, h, 1.0)
	}
}

func TestHighlightsRejectsBadChunkSize(t *testing.T) {
	_, err := Highlights(nil, 0)
	assert.ErrorIs(t, err, ErrChunkSize)
}

func TestFormatRules(t *testing.T) {
	f := NewFormatter("leia")
	prev := dataset.Row{Index: 0, Word: "well", Character: "LUKE", Scene: "1"}
	after := func(word string) Span {
		return f.Format(dataset.Row{Index: 1, Word: word, Character: "LUKE", Scene: "1"}, &prev, 0.5)
	}

	tests := []struct {
		name      string
		span      Span
		wantText  string
		wantGlued bool
	}{
		{"punctuation glued", after(","), ",", true},
		{"contraction glued", after("n't"), "n't", true},
		{"single word capital", after("i"), " I", false},
		{"proper noun", after("leia"), " Leia", false},
		{"plain word", after("droid"), " droid", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantText, tt.span.Text)
			assert.Equal(t, tt.wantGlued, tt.span.Glued)
			assert.False(t, tt.span.NewSpeaker)
			assert.False(t, tt.span.NewScene)
			assert.Contains(t, tt.span.Markup, "rgba(16, 96, 255, 0.500)")
		})
	}
}

func TestFormatCapitalizesSentenceStart(t *testing.T) {
	f := NewFormatter()
	for _, p := range []string{".", "!", "?", `"`, "...", "....", "--"} {
		prev := dataset.Row{Word: p, Character: "HAN", Scene: "1"}
		s := f.Format(dataset.Row{Index: 1, Word: "chewie", Character: "HAN", Scene: "1"}, &prev, 1)
		assert.Equal(t, " Chewie", s.Text, "after %q", p)
	}

	prev := dataset.Row{Word: ",", Character: "HAN", Scene: "1"}
	s := f.Format(dataset.Row{Index: 1, Word: "chewie", Character: "HAN", Scene: "1"}, &prev, 1)
	assert.Equal(t, " chewie", s.Text)
}

func TestFormatFirstRow(t *testing.T) {
	s := NewFormatter().Format(dataset.Row{Word: "hello", Character: "luke", Scene: "1"}, nil, 1)

	assert.True(t, s.NewSpeaker)
	assert.False(t, s.NewScene)
	assert.Equal(t, "LUKE", s.Speaker)
	assert.Equal(t,
		"\n<span><b> LUKE: </b></span>"+
			`<span style="background-color: rgba(16, 96, 255, 1.000)"> Hello</span>`,
		s.Markup)
	assert.True(t, s.ForcesBreak())
	assert.True(t, s.Breakable())
}

func TestFormatSceneAndSpeakerMarkers(t *testing.T) {
	prev := dataset.Row{Word: "go", Character: "LUKE", Scene: "1"}
	s := NewFormatter().Format(dataset.Row{Index: 1, Word: "now", Character: "LEIA", Scene: "2"}, &prev, 0)

	assert.True(t, s.NewScene)
	assert.True(t, s.NewSpeaker)
	sceneAt := strings.Index(s.Markup, "next scene")
	speakerAt := strings.Index(s.Markup, "LEIA:")
	require.GreaterOrEqual(t, sceneAt, 0)
	require.GreaterOrEqual(t, speakerAt, 0)
	assert.Less(t, sceneAt, speakerAt)
	assert.Contains(t, s.Markup, "rgba(16, 96, 255, 0.000)")
}

func TestFormatEscapesHTML(t *testing.T) {
	prev := dataset.Row{Word: "a", Character: "<R2>", Scene: "1"}
	s := NewFormatter().Format(dataset.Row{Index: 1, Word: "<b>", Character: "<R2>", Scene: "1"}, &prev, 1)
	assert.Contains(t, s.Markup, "&lt;b&gt;")
	assert.NotContains(t, s.Markup, "<b>")

	first := NewFormatter().Format(dataset.Row{Word: "hi", Character: "<r2>", Scene: "1"}, nil, 1)
	assert.Contains(t, first.Markup, "&lt;R2&gt;:")
}

func TestFormatRowsIsDeterministic(t *testing.T) {
	words := []string{"i", "don", "'t", "know", ",", "leia", ".", "what", "?"}
	rows := rowsOf(words,
		[]string{"LUKE", "LUKE", "LUKE", "LUKE", "LUKE", "LUKE", "LUKE", "HAN", "HAN"},
		[]string{"1", "1", "1", "1", "1", "1", "1", "2", "2"},
		[]float64{0, 1, 2, 3, 0, 5, 0, 1, 1},
	)
	f := NewFormatter("Leia")

	a, err := FormatRows(rows, 4, f)
	require.NoError(t, err)
	b, err := FormatRows(rows, 4, f)
	require.NoError(t, err)

	require.Len(t, a, len(rows))
	assert.Equal(t, a, b)
	assert.Equal(t, " I", a[0].Text)
	assert.Equal(t, "'t", a[2].Text)
	assert.Equal(t, " Leia", a[5].Text)
	assert.Equal(t, " What", a[7].Text)
	assert.True(t, a[7].NewScene)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Luke", Capitalize("lUKE"))
	assert.Equal(t, "Élan", Capitalize("élan"))
	assert.Equal(t, "", Capitalize(""))
}
