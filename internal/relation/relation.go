// Package relation keeps obfuscated foreign keys consistent across
// tables: two rows (anywhere in the dump) that share a source value for
// the same relation must receive the same replacement. It lives for the
// whole run, unlike the per-table unique tracker.
package relation

// Tracker is table -> to_column -> from_value -> replacement.
type Tracker struct {
	values map[string]map[string]map[string]string
}

// New returns an empty Tracker.
func New() *Tracker {
	return &Tracker{values: make(map[string]map[string]map[string]string)}
}

// Lookup returns the previously stored replacement for (table, toColumn,
// fromValue), if any.
func (t *Tracker) Lookup(table, toColumn, fromValue string) (string, bool) {
	cols, ok := t.values[table]
	if !ok {
		return "", false
	}
	fromVals, ok := cols[toColumn]
	if !ok {
		return "", false
	}
	v, ok := fromVals[fromValue]
	return v, ok
}

// Store records a new mapping, overwriting any previous entry for the
// same (table, toColumn, fromValue).
func (t *Tracker) Store(table, toColumn, fromValue, replacement string) {
	cols, ok := t.values[table]
	if !ok {
		cols = make(map[string]map[string]string)
		t.values[table] = cols
	}
	fromVals, ok := cols[toColumn]
	if !ok {
		fromVals = make(map[string]string)
		cols[toColumn] = fromVals
	}
	fromVals[fromValue] = replacement
}
