package mutation

import (
	"math/rand"

	"pganonymize/internal/core"
	"pganonymize/internal/fakedata"
	"pganonymize/internal/unique"
)

func newTestContext(kwargs map[string]any, locale core.Locale) *Context {
	if kwargs == nil {
		kwargs = map[string]any{}
	}
	return &Context{
		Kwargs:        kwargs,
		Rng:           rand.New(rand.NewSource(1)),
		UniqueTracker: unique.New(),
		Locale:        locale,
		Secrets:       map[string]string{},
		Fake:          fakedata.Default(),
		Obfuscated:    map[string]string{},
	}
}
