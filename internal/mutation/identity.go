package mutation

import (
	"time"

	"github.com/google/uuid"

	"pganonymize/internal/core"
)

// UUID4 generates a random (version 4) UUID.
func UUID4(c *Context) (string, error) {
	return uuid.New().String(), nil
}

// UUID5BySourceValue generates a deterministic (version 5) UUID from
// "namespace" (a UUID string) and the already-mutated value of the
// column named by "source_column", concatenated with today's ISO date.
// Requires sort ordering to have processed source_column first.
func UUID5BySourceValue(c *Context) (string, error) {
	namespaceStr, err := requireString(c, "namespace", "uuid5_by_source_value")
	if err != nil {
		return "", err
	}
	sourceColumn, err := requireString(c, "source_column", "uuid5_by_source_value")
	if err != nil {
		return "", err
	}

	namespace, err := uuid.Parse(namespaceStr)
	if err != nil {
		return "", core.Wrapf(core.KindInvalidParameter, err, "invalid UUID namespace '%s'", namespaceStr)
	}

	sourceValue := c.Obfuscated[sourceColumn]
	today := time.Now().UTC().Format("2006-01-02")
	name := sourceValue + today
	return uuid.NewSHA1(namespace, []byte(name)).String(), nil
}
