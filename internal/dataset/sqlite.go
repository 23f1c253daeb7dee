package dataset

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

const DefaultTable = "dialogue"

// LoadSQLite reads rows from a table of an existing SQLite database, in rowid
// order. The database is opened read-only.
func LoadSQLite(path, table string, cols Columns) ([]Row, error) {
	if table == "" {
		table = DefaultTable
	}
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	present, err := tableColumns(db, table)
	if err != nil {
		return nil, fmt.Errorf("inspect table %s: %w", table, err)
	}
	if len(present) == 0 {
		return nil, fmt.Errorf("%w: table %s has no columns (missing table?)", ErrColumnNotFound, table)
	}
	for _, name := range cols.names() {
		if _, ok := present[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
		}
	}

	query := fmt.Sprintf("SELECT %s, %s, %s, %s FROM %s ORDER BY rowid",
		quoteIdent(cols.Word),
		quoteIdent(cols.Character),
		quoteIdent(cols.Scene),
		quoteIdent(cols.Frequency),
		quoteIdent(table),
	)
	rs, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}
	defer rs.Close()

	var rows []Row
	for rs.Next() {
		var word, character, scene sql.NullString
		var freq sql.NullFloat64
		if err := rs.Scan(&word, &character, &scene, &freq); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(rows)+1, err)
		}
		if freq.Float64 < 0 {
			return nil, fmt.Errorf("row %d: %s: invalid reuse frequency %v", len(rows)+1, cols.Frequency, freq.Float64)
		}
		rows = append(rows, Row{
			Index:          len(rows),
			Word:           word.String,
			Character:      character.String,
			Scene:          scene.String,
			ReuseFrequency: freq.Float64,
		})
	}
	return rows, rs.Err()
}

func tableColumns(db *sql.DB, table string) (map[string]struct{}, error) {
	rs, err := db.Query("SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	cols := make(map[string]struct{})
	for rs.Next() {
		var name string
		if err := rs.Scan(&name); err != nil {
			return nil, err
		}
		cols[name] = struct{}{}
	}
	return cols, rs.Err()
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
