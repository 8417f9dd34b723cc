// Package dataset loads the tabular side of a choropleth: CSV, XLSX and
// JSON arrays of objects, all read into choropleth records.
package dataset

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"choromap/internal/choropleth"
)

// Table is a loaded dataset. Columns keeps the header order of the source.
type Table struct {
	Name    string
	Columns []string
	Records []choropleth.Record
}

// Options selects what to read from multi-sheet sources.
type Options struct {
	Sheet      string // xlsx sheet name, overrides SheetIndex
	SheetIndex int
}

// Load reads path, choosing the reader by extension.
func Load(path string, opts Options) (*Table, error) {
	var (
		t   *Table
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		t, err = ReadCSV(path)
	case ".xlsx":
		t, err = ReadXLSX(path, opts)
	case ".json":
		t, err = ReadJSON(path)
	default:
		return nil, eris.Errorf("dataset: unsupported file type %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	t.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return t, nil
}

// fromRows turns a header row plus data rows into a table. Short rows are
// padded with empty strings, extra cells are dropped, blank rows skipped.
func fromRows(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, eris.New("dataset: no header row")
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	t := &Table{Columns: header}
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		rec := make(choropleth.Record, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			v := ""
			if i < len(row) {
				v = strings.TrimSpace(row[i])
			}
			rec[col] = v
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// NumericColumns lists the columns whose non-blank values are all numbers,
// in column order. A column with no values at all is not numeric.
func (t *Table) NumericColumns() []string {
	var out []string
	for _, col := range t.Columns {
		seen, numeric := 0, true
		for _, r := range t.Records {
			v, ok := r[col]
			if !ok || v == nil {
				continue
			}
			if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
				continue
			}
			if _, ok := choropleth.Number(v); !ok {
				numeric = false
				break
			}
			seen++
		}
		if numeric && seen > 0 {
			out = append(out, col)
		}
	}
	return out
}

// Column returns the distinct non-blank values of col, sorted.
func (t *Table) Column(col string) []string {
	set := map[string]struct{}{}
	for _, r := range t.Records {
		if k := choropleth.Key(r[col]); k != "" {
			set[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
