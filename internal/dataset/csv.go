package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const utf8BOM = "\ufeff"

// Load reads rows from path, choosing the reader by file extension.
// SQLite files read from table; everything else is parsed as CSV.
func Load(path, table string, cols Columns) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(path, table, cols)
	default:
		return LoadCSV(path, cols)
	}
}

func LoadCSV(path string, cols Columns) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := ReadCSV(f, cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// ReadCSV parses a CSV stream with a header row. Columns are located by
// exact header name; extra columns are ignored.
func ReadCSV(r io.Reader, cols Columns) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s (empty input)", ErrColumnNotFound, cols.Word)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	pos := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	idx := make([]int, 0, 4)
	for _, name := range cols.names() {
		i, ok := pos[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
		}
		idx = append(idx, i)
	}

	var rows []Row
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		get := func(i int) string {
			if i < len(rec) {
				return rec[i]
			}
			return ""
		}

		freq, err := parseFrequency(get(idx[3]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line, cols.Frequency, err)
		}

		rows = append(rows, Row{
			Index:          len(rows),
			Word:           get(idx[0]),
			Character:      get(idx[1]),
			Scene:          get(idx[2]),
			ReuseFrequency: freq,
		})
	}
	return rows, nil
}

// parseFrequency treats a blank cell as zero reuse.
func parseFrequency(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid reuse frequency %q", s)
	}
	return f, nil
}
