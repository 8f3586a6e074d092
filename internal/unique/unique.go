// Package unique tracks already-emitted values for columns marked
// "unique": true, retrying a generator until a fresh value is produced.
package unique

import "pganonymize/internal/core"

// maxRetries bounds how many times GenerateUnique retries a generator
// before giving up, per spec.
const maxRetries = 1000

// Tracker is a per-table set of emitted values, reset at every COPY
// boundary.
type Tracker struct {
	seen map[string]struct{}
}

// New returns an empty Tracker.
func New() *Tracker {
	return &Tracker{seen: make(map[string]struct{})}
}

// TryInsert reports whether value was new, inserting it only when new.
func (t *Tracker) TryInsert(value string) bool {
	if _, ok := t.seen[value]; ok {
		return false
	}
	t.seen[value] = struct{}{}
	return true
}

// GenerateUnique calls gen until it returns a value not yet seen by this
// tracker, or fails after maxRetries attempts.
func (t *Tracker) GenerateUnique(gen func() (string, error)) (string, error) {
	for i := 0; i < maxRetries; i++ {
		v, err := gen()
		if err != nil {
			return "", err
		}
		if t.TryInsert(v) {
			return v, nil
		}
	}
	return "", core.Wrapf(core.KindUniqueExhausted, nil, "no unique value after %d attempts", maxRetries)
}

// Clear resets the tracker, called at every COPY boundary.
func (t *Tracker) Clear() {
	t.seen = make(map[string]struct{})
}
