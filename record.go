package recio

// Record is one decoded item: a field-name to value mapping. Values stay in
// the JSON-ish scalar set: string, json.Number/int64/float64, bool, nil,
// nested map[string]any, []any. A field that is present but empty is an
// explicit nil entry, not a missing key.
//
// Records are produced fresh per item; ownership transfers to the caller and
// readers never retain or mutate a yielded Record.
type Record map[string]any

// clone makes a shallow copy so in-memory table rows handed to a caller never
// alias the caller's own backing data.
func (r Record) clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
