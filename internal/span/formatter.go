package span

import (
	"errors"
	"fmt"
	"html"
	"iter"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Zuo-Peng/reusevis/internal/dataset"
)

var ErrChunkSize = errors.New("chunk size must be positive")

func set(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

var (
	punctuation    = set(",", ".", "!", "?", "'", `"`, ":", "-", "--")
	endPunctuation = set(".", "!", "?", `"`, "...", "....", "--")
	contractions   = set("'ve", "'m", "'ll", "'re", "'s", "'t", "n't", "na")
	capitals       = set("i")
)

func in(m map[string]struct{}, w string) bool {
	_, ok := m[w]
	return ok
}

// Formatter renders rows into spans. Proper nouns listed in names are
// capitalized wherever they appear.
type Formatter struct {
	names map[string]struct{}
}

func NewFormatter(names ...string) *Formatter {
	f := &Formatter{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		if n == "" {
			continue
		}
		f.names[Capitalize(n)] = struct{}{}
	}
	return f
}

// Format builds the span for cur. prev is nil for the first row.
func (f *Formatter) Format(cur dataset.Row, prev *dataset.Row, highlight float64) Span {
	s := Span{Highlight: clamp(highlight)}
	var b []byte

	if prev != nil && cur.Scene != prev.Scene {
		s.NewScene = true
		b = append(b, plain(sceneBreak)...)
	}
	if prev == nil || cur.Character != prev.Character {
		s.NewSpeaker = true
		s.Speaker = cases.Upper(language.Und).String(cur.Character)
		b = append(b, speakerLabel(s.Speaker)...)
	}

	prevWord := ""
	if prev != nil {
		prevWord = prev.Word
	}
	word := cur.Word

	switch {
	case in(punctuation, word) || in(contractions, word):
		s.Glued = true
		s.Text = word
	case prevWord == "" || in(endPunctuation, prevWord):
		s.Text = " " + Capitalize(word)
	case in(capitals, word):
		s.Text = " " + cases.Upper(language.Und).String(word)
	case f.isName(word):
		s.Text = " " + Capitalize(word)
	default:
		s.Text = " " + word
	}

	b = append(b, highlighted(html.EscapeString(s.Text), s.Highlight)...)
	s.Markup = string(b)
	return s
}

func (f *Formatter) isName(word string) bool {
	if len(f.names) == 0 {
		return false
	}
	_, ok := f.names[Capitalize(word)]
	return ok
}

// Capitalize upper-cases the first letter of w and lower-cases the rest.
func Capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToTitle(r)) + cases.Lower(language.Und).String(w[size:])
}

// Pairs yields every row with its predecessor; the first row is paired with nil.
func Pairs(rows []dataset.Row) iter.Seq2[dataset.Row, *dataset.Row] {
	return func(yield func(dataset.Row, *dataset.Row) bool) {
		for i := range rows {
			var prev *dataset.Row
			if i > 0 {
				prev = &rows[i-1]
			}
			if !yield(rows[i], prev) {
				return
			}
		}
	}
}

func SpeakerChanges(rows []dataset.Row) []bool {
	out := make([]bool, 0, len(rows))
	for cur, prev := range Pairs(rows) {
		out = append(out, prev == nil || cur.Character != prev.Character)
	}
	return out
}

func SceneChanges(rows []dataset.Row) []bool {
	out := make([]bool, 0, len(rows))
	for cur, prev := range Pairs(rows) {
		out = append(out, prev != nil && cur.Scene != prev.Scene)
	}
	return out
}

// ChunkOf returns the chunk a row index falls in.
func ChunkOf(index, size int) int {
	return index / size
}

// Highlights normalizes each row's reuse frequency by the largest frequency
// in its chunk. A chunk with no reuse at all yields zeros.
func Highlights(rows []dataset.Row, size int) ([]float64, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrChunkSize, size)
	}
	chunkMax := make(map[int]float64)
	for _, r := range rows {
		c := ChunkOf(r.Index, size)
		if m, ok := chunkMax[c]; !ok || r.ReuseFrequency > m {
			chunkMax[c] = r.ReuseFrequency
		}
	}

	out := make([]float64, len(rows))
	for i, r := range rows {
		m := chunkMax[ChunkOf(r.Index, size)]
		if m <= 0 {
			continue
		}
		out[i] = r.ReuseFrequency / m
	}
	return out, nil
}

// FormatRows formats every row in reading order.
func FormatRows(rows []dataset.Row, size int, f *Formatter) ([]Span, error) {
	highlights, err := Highlights(rows, size)
	if err != nil {
		return nil, err
	}
	if f == nil {
		f = NewFormatter()
	}

	spans := make([]Span, 0, len(rows))
	i := 0
	for cur, prev := range Pairs(rows) {
		spans = append(spans, f.Format(cur, prev, highlights[i]))
		i++
	}
	return spans, nil
}
