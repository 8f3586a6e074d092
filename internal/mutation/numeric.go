package mutation

import "fmt"

func genInt(c *Context, min, max int64) (string, error) {
	start := c.Int64("start", min)
	end := c.Int64("end", max)
	if start < min {
		start = min
	}
	if end > max {
		end = max
	}
	return withUnique(c, func() (string, error) {
		return fmt.Sprintf("%d", randInt64Range(c, start, end)), nil
	})
}

// randInt64Range returns a uniformly distributed value in [start, end].
func randInt64Range(c *Context, start, end int64) int64 {
	if end <= start {
		return start
	}
	span := uint64(end - start)
	if span == ^uint64(0) {
		return int64(c.Rng.Uint64())
	}
	return start + int64(c.Rng.Uint64()%(span+1))
}

// Smallint generates a value in [-32768, 32767].
func Smallint(c *Context) (string, error) { return genInt(c, -32768, 32767) }

// Integer generates a value in [-2147483648, 2147483647].
func Integer(c *Context) (string, error) { return genInt(c, -2147483648, 2147483647) }

// Bigint generates a value in the full int64 range.
func Bigint(c *Context) (string, error) { return genInt(c, -9223372036854775808, 9223372036854775807) }

// Smallserial generates a value in [1, 32767].
func Smallserial(c *Context) (string, error) { return genInt(c, 1, 32767) }

// Serial generates a value in [1, 2147483647].
func Serial(c *Context) (string, error) { return genInt(c, 1, 2147483647) }

// Bigserial generates a value in [1, 9223372036854775807].
func Bigserial(c *Context) (string, error) { return genInt(c, 1, 9223372036854775807) }

func genFloat(c *Context, defMin, defMax float64, precision int) (string, error) {
	start := c.Float64("start", defMin)
	end := c.Float64("end", defMax)
	return withUnique(c, func() (string, error) {
		val := start
		if end > start {
			val = start + c.Rng.Float64()*(end-start)
		}
		return fmt.Sprintf("%.*f", precision, val), nil
	})
}

// Decimal generates a value in [-999999, 999999] with the "precision"
// kwarg (default 2) decimal places.
func Decimal(c *Context) (string, error) {
	precision := int(c.Int64("precision", 2))
	return genFloat(c, -999999, 999999, precision)
}

// Real generates a value in [-999999, 999999] with 6 decimal places.
func Real(c *Context) (string, error) { return genFloat(c, -999999, 999999, 6) }

// DoublePrecision generates a value in [-999999999, 999999999] with 15
// decimal places.
func DoublePrecision(c *Context) (string, error) { return genFloat(c, -999999999, 999999999, 15) }
