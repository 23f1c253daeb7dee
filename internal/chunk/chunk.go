// Package chunk groups formatted spans into fixed-size word chunks and
// reduces each chunk to one reuse score and one wrapped text blob.
package chunk

import (
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/Zuo-Peng/reusevis/internal/dataset"
	"github.com/Zuo-Peng/reusevis/internal/span"
)

// wrapAfter is the number of spans a line holds before it may wrap at the
// next word boundary.
const wrapAfter = 7

type Entry struct {
	ChunkID   int
	Span      span.Span
	Frequency float64
}

type Chunk struct {
	ID        int
	Frequency float64  // geometric mean of reuse frequency + 1
	Lines     []string // wrapped lines, without the <div> wrapper
	Text      string   // lines wrapped in <div> and joined with newlines
	Spans     []span.Span
	Words     int
}

// Entries pairs rows with their spans and chunk ids.
func Entries(rows []dataset.Row, spans []span.Span, size int) ([]Entry, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", span.ErrChunkSize, size)
	}
	if len(rows) != len(spans) {
		return nil, fmt.Errorf("rows and spans differ in length: %d != %d", len(rows), len(spans))
	}
	out := make([]Entry, len(rows))
	for i, r := range rows {
		out[i] = Entry{
			ChunkID:   span.ChunkOf(r.Index, size),
			Span:      spans[i],
			Frequency: r.ReuseFrequency,
		}
	}
	return out, nil
}

// Aggregate reduces entries to one Chunk per chunk id, in ascending id order.
// Entries keep their relative order within a chunk.
func Aggregate(entries []Entry) []Chunk {
	groups := make(map[int][]Entry)
	var ids []int
	for _, e := range entries {
		if _, ok := groups[e.ChunkID]; !ok {
			ids = append(ids, e.ChunkID)
		}
		groups[e.ChunkID] = append(groups[e.ChunkID], e)
	}
	slices.Sort(ids)

	chunks := make([]Chunk, 0, len(ids))
	for _, id := range ids {
		group := groups[id]
		spans := make([]span.Span, len(group))
		freqs := make([]float64, len(group))
		for i, e := range group {
			spans[i] = e.Span
			freqs[i] = e.Frequency
		}

		lines := Wrap(spans)
		chunks = append(chunks, Chunk{
			ID:        id,
			Frequency: GeometricMean(freqs),
			Lines:     lines,
			Text:      joinLines(lines),
			Spans:     spans,
			Words:     len(spans),
		})
	}
	return chunks
}

// GeometricMean returns the geometric mean of f+1 over freqs. The offset
// keeps zero counts from collapsing the mean; an empty chunk scores 1.
func GeometricMean(freqs []float64) float64 {
	if len(freqs) == 0 {
		return 1
	}
	shifted := make([]float64, len(freqs))
	for i, f := range freqs {
		shifted[i] = f + 1
	}
	return stat.GeometricMean(shifted, nil)
}

// Wrap splits spans into lines. A line breaks before every speaker change,
// and before any word that starts with whitespace once the line holds
// wrapAfter spans.
func Wrap(spans []span.Span) []string {
	var lines []string
	var line strings.Builder
	n := 0

	for _, s := range spans {
		if n > 0 && (s.ForcesBreak() || (n >= wrapAfter && s.Breakable())) {
			lines = append(lines, line.String())
			line.Reset()
			n = 0
		}
		line.WriteString(s.Markup)
		n++
	}

	if tail := line.String(); strings.TrimSpace(tail) != "" {
		lines = append(lines, tail)
	}
	return lines
}

// JoinWrap wraps spans and returns the lines as one <div> per line.
func JoinWrap(spans []span.Span) string {
	return joinLines(Wrap(spans))
}

func joinLines(lines []string) string {
	divs := make([]string, len(lines))
	for i, l := range lines {
		divs[i] = "<div>" + l + "</div>"
	}
	return strings.Join(divs, "\n")
}
