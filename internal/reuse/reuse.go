// Package reuse runs the formatting and aggregation passes over a dataset.
package reuse

import (
	"fmt"

	"github.com/Zuo-Peng/reusevis/internal/chunk"
	"github.com/Zuo-Peng/reusevis/internal/dataset"
	"github.com/Zuo-Peng/reusevis/internal/span"
)

const DefaultChunkSize = 140

type Options struct {
	ChunkSize int      // words per chunk
	Names     []string // proper nouns to capitalize
}

// Analyze formats rows into spans and reduces them to per-chunk aggregates.
func Analyze(rows []dataset.Row, opts Options) ([]chunk.Chunk, error) {
	if opts.ChunkSize <= 0 {
		return nil, fmt.Errorf("%w: %d", span.ErrChunkSize, opts.ChunkSize)
	}

	spans, err := span.FormatRows(rows, opts.ChunkSize, span.NewFormatter(opts.Names...))
	if err != nil {
		return nil, fmt.Errorf("format spans: %w", err)
	}

	entries, err := chunk.Entries(rows, spans, opts.ChunkSize)
	if err != nil {
		return nil, fmt.Errorf("chunk entries: %w", err)
	}
	return chunk.Aggregate(entries), nil
}

type Summary struct {
	Rows         int
	Chunks       int
	Speakers     int
	Scenes       int
	MinFrequency float64
	MaxFrequency float64
}

func (s Summary) String() string {
	return fmt.Sprintf("rows=%d chunks=%d speakers=%d scenes=%d min=%.3f max=%.3f",
		s.Rows, s.Chunks, s.Speakers, s.Scenes, s.MinFrequency, s.MaxFrequency)
}

// Summarize counts distinct speakers and scenes and the range of chunk scores.
func Summarize(rows []dataset.Row, chunks []chunk.Chunk) Summary {
	speakers := make(map[string]struct{})
	scenes := make(map[string]struct{})
	for _, r := range rows {
		speakers[r.Character] = struct{}{}
		scenes[r.Scene] = struct{}{}
	}

	s := Summary{
		Rows:     len(rows),
		Chunks:   len(chunks),
		Speakers: len(speakers),
		Scenes:   len(scenes),
	}
	for i, c := range chunks {
		if i == 0 || c.Frequency < s.MinFrequency {
			s.MinFrequency = c.Frequency
		}
		if i == 0 || c.Frequency > s.MaxFrequency {
			s.MaxFrequency = c.Frequency
		}
	}
	return s
}
