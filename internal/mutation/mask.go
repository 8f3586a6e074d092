package mutation

import "strings"

// StringByMask replaces every "char" placeholder (default '@') with a
// random uppercase letter and every "digit" placeholder (default '#')
// with a random digit, copying all other characters verbatim from the
// "mask" kwarg.
func StringByMask(c *Context) (string, error) {
	mask, err := requireString(c, "mask", "string_by_mask")
	if err != nil {
		return "", err
	}

	charPlaceholder := "@"
	if v, ok := c.String("char"); ok && v != "" {
		charPlaceholder = v
	}
	digitPlaceholder := "#"
	if v, ok := c.String("digit"); ok && v != "" {
		digitPlaceholder = v
	}

	return withUnique(c, func() (string, error) {
		var b strings.Builder
		b.Grow(len(mask))
		for _, ch := range mask {
			switch string(ch) {
			case charPlaceholder:
				b.WriteByte(byte('A' + c.Rng.Intn(26)))
			case digitPlaceholder:
				b.WriteByte(byte('0' + c.Rng.Intn(10)))
			default:
				b.WriteRune(ch)
			}
		}
		return b.String(), nil
	})
}
