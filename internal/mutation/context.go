// Package mutation implements the uniform dispatch interface and the
// leaf generators it fans out to: names, contact info, numeric ranges,
// dates, network addresses, identity (UUIDs), simple substitutions, and
// mask-based strings.
package mutation

import (
	"math/rand"

	"pganonymize/internal/core"
	"pganonymize/internal/fakedata"
	"pganonymize/internal/unique"
)

// Context is the per-invocation state a generator sees: the directive's
// kwargs, the column's current (pre-mutation) value, the shared RNG and
// unique tracker (owned exclusively by the row mutator during the call),
// the active locale, environment-derived secrets, the fake-data provider,
// and the values already produced earlier in this row (for
// source_column-dependent generators).
type Context struct {
	Kwargs        map[string]any
	CurrentValue  string
	Rng           *rand.Rand
	UniqueTracker *unique.Tracker
	Locale        core.Locale
	Secrets       map[string]string
	Fake          fakedata.Provider
	Obfuscated    map[string]string
}

// Bool returns the boolean kwarg, defaulting to false.
func (c *Context) Bool(key string) bool {
	v, ok := c.Kwargs[key].(bool)
	return ok && v
}

// String returns the string kwarg and whether it was present.
func (c *Context) String(key string) (string, bool) {
	v, ok := c.Kwargs[key].(string)
	return v, ok
}

// Int64 returns the integer kwarg (JSON numbers decode as float64),
// defaulting to def when absent.
func (c *Context) Int64(key string, def int64) int64 {
	switch v := c.Kwargs[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return def
	}
}

// Float64 returns the numeric kwarg, defaulting to def when absent.
func (c *Context) Float64(key string, def float64) float64 {
	switch v := c.Kwargs[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return def
	}
}

// requireString fetches a required string kwarg, returning a
// MissingParameter error named after the owning mutation when absent.
func requireString(c *Context, key, mutationName string) (string, error) {
	v, ok := c.String(key)
	if !ok || v == "" {
		return "", core.Wrapf(core.KindMissingParameter, nil, "'%s' for mutation '%s'", key, mutationName)
	}
	return v, nil
}

// withUnique runs gen once, or retries it through the unique tracker when
// the "unique" kwarg is set.
func withUnique(c *Context, gen func() (string, error)) (string, error) {
	if !c.Bool("unique") {
		return gen()
	}
	return c.UniqueTracker.GenerateUnique(gen)
}
