package mutation

import "pganonymize/internal/core"

// FirstName generates a locale-appropriate first name.
func FirstName(c *Context) (string, error) {
	return withUnique(c, func() (string, error) {
		return c.Fake.FirstName(c.Locale, c.Rng), nil
	})
}

// LastName generates a locale-appropriate last name.
func LastName(c *Context) (string, error) {
	return withUnique(c, func() (string, error) {
		return c.Fake.LastName(c.Locale, c.Rng), nil
	})
}

// FullName composes "last first" for English, "last first patronymic" for
// Russian.
func FullName(c *Context) (string, error) {
	return withUnique(c, func() (string, error) {
		first := c.Fake.FirstName(c.Locale, c.Rng)
		last := c.Fake.LastName(c.Locale, c.Rng)
		if c.Locale == core.LocaleRU {
			return last + " " + first + " " + c.Fake.Patronymic(c.Rng), nil
		}
		return last + " " + first, nil
	})
}

// MiddleName generates a patronymic. Only defined for the Russian locale;
// any other locale is a mutation error (not a missing parameter, since the
// locale itself is the wrong shape for this mutation).
func MiddleName(c *Context) (string, error) {
	if c.Locale != core.LocaleRU {
		return "", core.Wrap(core.KindMutationError, "middle_name mutation is only available for Russian locale", nil)
	}
	return withUnique(c, func() (string, error) {
		return c.Fake.Patronymic(c.Rng), nil
	})
}
