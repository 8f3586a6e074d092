package mutation

import (
	"fmt"

	"pganonymize/internal/core"
)

// Null emits the COPY null marker, bypassing unique tracking since the
// output is constant by definition.
func Null(c *Context) (string, error) {
	return `\N`, nil
}

// EmptyString emits an empty string.
func EmptyString(c *Context) (string, error) {
	return "", nil
}

// FixedValue emits the "value" kwarg, formatted as a COPY field.
func FixedValue(c *Context) (string, error) {
	raw, ok := c.Kwargs["value"]
	if !ok {
		return "", core.Wrapf(core.KindMissingParameter, nil, "fixed_value requires a 'value' parameter")
	}
	return formatKwargValue(raw), nil
}

// RandomChoice emits a uniformly random element of the "choices" array
// kwarg.
func RandomChoice(c *Context) (string, error) {
	raw, ok := c.Kwargs["choices"]
	if !ok {
		return "", core.Wrapf(core.KindMissingParameter, nil, "random_choice requires a 'choices' parameter")
	}
	choices, ok := raw.([]any)
	if !ok || len(choices) == 0 {
		return "", core.Wrap(core.KindInvalidParameter, "random_choice 'choices' must be a non-empty array", nil)
	}
	return withUnique(c, func() (string, error) {
		return formatKwargValue(choices[c.Rng.Intn(len(choices))]), nil
	})
}

func formatKwargValue(v any) string {
	if v == nil {
		return `\N`
	}
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "t"
		}
		return "f"
	default:
		return fmt.Sprintf("%v", t)
	}
}
