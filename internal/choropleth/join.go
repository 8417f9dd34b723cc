package choropleth

// Extent is the [Min, Max] of a numeric field. Valid is false when no
// record carried a number.
type Extent struct {
	Min   float64 `json:"min" yaml:"min"`
	Max   float64 `json:"max" yaml:"max"`
	Valid bool    `json:"valid" yaml:"valid"`
}

func (e *Extent) add(v float64) {
	if !e.Valid {
		e.Min, e.Max, e.Valid = v, v, true
		return
	}
	if v < e.Min {
		e.Min = v
	}
	if v > e.Max {
		e.Max = v
	}
}

// ExtentOf scans records for the min and max of field, skipping values
// that are not numbers.
func ExtentOf(records []Record, field string) Extent {
	var e Extent
	for _, r := range records {
		if f, ok := Number(r[field]); ok {
			e.add(f)
		}
	}
	return e
}

// Filter keeps the records accepted by keep, preserving order. A nil
// predicate keeps everything.
func Filter(records []Record, keep func(Record) bool) []Record {
	if keep == nil {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// JoinResult is the outcome of binding records to nodes.
type JoinResult struct {
	Nodes   []*Node
	Records []Record
	Extent  Extent
	Bound   int
}

// Join binds every node to the first filtered record whose idField equals
// the node key, copying valueField into the node properties. Unmatched
// nodes have valueField removed. The extent covers all filtered records,
// matched or not.
func Join(records []Record, nodes []*Node, idField, valueField string, keep func(Record) bool) JoinResult {
	filtered := Filter(records, keep)

	index := make(map[string]Record, len(filtered))
	for _, r := range filtered {
		k := Key(r[idField])
		if k == "" {
			continue
		}
		if _, dup := index[k]; !dup {
			index[k] = r
		}
	}

	res := JoinResult{Nodes: nodes, Records: filtered, Extent: ExtentOf(filtered, valueField)}
	for _, n := range nodes {
		n.field = valueField
		n.Record = nil
		r, ok := index[n.Key]
		if !ok || n.Key == "" {
			delete(n.Properties, valueField)
			continue
		}
		n.Record = r
		if v, has := r[valueField]; has {
			n.Properties[valueField] = v
		} else {
			delete(n.Properties, valueField)
		}
		res.Bound++
	}
	return res
}
