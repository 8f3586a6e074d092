package mutation

import "fmt"

const uriChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// URI generates a random "scheme://domain/path" string, truncated to
// "max_length" (default 2048) bytes.
func URI(c *Context) (string, error) {
	maxLength := int(c.Int64("max_length", 2048))
	return withUnique(c, func() (string, error) {
		scheme := c.Fake.URIScheme(c.Rng)
		domain := c.Fake.URIDomain(c.Rng)
		pathLen := 4 + c.Rng.Intn(8)
		path := make([]byte, pathLen)
		for i := range path {
			path[i] = uriChars[c.Rng.Intn(len(uriChars))]
		}
		url := fmt.Sprintf("%s://%s/%s", scheme, domain, string(path))
		if len(url) > maxLength {
			url = url[:maxLength]
		}
		return url, nil
	})
}

// IPv4 generates a random dotted-quad address with non-zero first/last
// octets.
func IPv4(c *Context) (string, error) {
	return withUnique(c, func() (string, error) {
		return fmt.Sprintf("%d.%d.%d.%d",
			1+c.Rng.Intn(254),
			c.Rng.Intn(255),
			c.Rng.Intn(255),
			1+c.Rng.Intn(254),
		), nil
	})
}

// IPv6 generates a random 8-group hex address.
func IPv6(c *Context) (string, error) {
	return withUnique(c, func() (string, error) {
		var groups [8]string
		for i := range groups {
			groups[i] = fmt.Sprintf("%04x", c.Rng.Intn(0x10000))
		}
		out := groups[0]
		for _, g := range groups[1:] {
			out += ":" + g
		}
		return out, nil
	})
}
