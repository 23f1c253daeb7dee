package dataset

import "errors"

// ErrColumnNotFound is returned when a required column is absent from the input.
var ErrColumnNotFound = errors.New("column not found")

type Row struct {
	Index          int // 0-based position in reading order
	Word           string
	Character      string
	Scene          string
	ReuseFrequency float64
}

// Columns names the input columns holding each Row field.
type Columns struct {
	Word      string `toml:"word" yaml:"word"`
	Character string `toml:"character" yaml:"character"`
	Scene     string `toml:"scene" yaml:"scene"`
	Frequency string `toml:"frequency" yaml:"frequency"`
}

func DefaultColumns() Columns {
	return Columns{
		Word:      "LOWERCASE",
		Character: "CHARACTER",
		Scene:     "SCENE",
		Frequency: "Frequency of Reuse (Exact)",
	}
}

// names returns the column names in Row field order.
func (c Columns) names() []string {
	return []string{c.Word, c.Character, c.Scene, c.Frequency}
}
