package dataset

import (
	"bytes"
	"encoding/json"
	"os"
	"sort"

	"github.com/rotisserie/eris"

	"choromap/internal/choropleth"
)

// ReadJSON reads an array of flat objects. Numbers are kept as
// json.Number so large ids survive. Columns are the sorted union of keys.
func ReadJSON(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "dataset: read json")
	}
	return DecodeJSON(data)
}

// DecodeJSON is ReadJSON over an in-memory document.
func DecodeJSON(data []byte) (*Table, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, eris.Wrap(err, "dataset: decode json array")
	}

	cols := map[string]struct{}{}
	t := &Table{Records: make([]choropleth.Record, 0, len(rows))}
	for _, row := range rows {
		if row == nil {
			continue
		}
		for k := range row {
			cols[k] = struct{}{}
		}
		t.Records = append(t.Records, choropleth.Record(row))
	}
	for k := range cols {
		t.Columns = append(t.Columns, k)
	}
	sort.Strings(t.Columns)
	return t, nil
}
