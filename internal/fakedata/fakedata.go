// Package fakedata defines the pluggable capability the mutation
// generators draw synthetic values from. The core never depends on a
// particular corpus implementation (only on this interface), so a
// caller can substitute a richer locale library without touching
// internal/mutation.
package fakedata

import (
	"math/rand"

	"pganonymize/internal/core"
)

// Provider is the opaque source of locale-tagged synthetic values
// consumed by the name/contact/network mutation generators.
type Provider interface {
	FirstName(locale core.Locale, rng *rand.Rand) string
	LastName(locale core.Locale, rng *rand.Rand) string
	Patronymic(rng *rand.Rand) string
	Address(locale core.Locale, rng *rand.Rand) string
	EmailDomain(locale core.Locale, rng *rand.Rand) string
	URIScheme(rng *rand.Rand) string
	URIDomain(rng *rand.Rand) string
}

// builtin is the default, compact static-corpus Provider.
type builtin struct{}

// Default returns the built-in Provider backed by the compact static
// corpora in en.go / ru.go.
func Default() Provider { return builtin{} }

func (builtin) FirstName(locale core.Locale, rng *rand.Rand) string {
	if locale == core.LocaleRU {
		if rng.Intn(2) == 0 {
			return pick(rng, ruFirstNamesMale)
		}
		return pick(rng, ruFirstNamesFemale)
	}
	return pick(rng, enFirstNames)
}

func (builtin) LastName(locale core.Locale, rng *rand.Rand) string {
	if locale == core.LocaleRU {
		if rng.Intn(2) == 0 {
			return pick(rng, ruLastNamesMale)
		}
		return pick(rng, ruLastNamesFemale)
	}
	return pick(rng, enLastNames)
}

func (builtin) Patronymic(rng *rand.Rand) string {
	return pick(rng, ruPatronymics)
}

func (builtin) Address(locale core.Locale, rng *rand.Rand) string {
	if locale == core.LocaleRU {
		return pick(rng, ruStreets) + ", " + pick(rng, ruCities)
	}
	number := 1 + rng.Intn(9998)
	return itoa(number) + " " + pick(rng, enStreets) + ", " + pick(rng, enCities) + ", " + pick(rng, enStates)
}

func (builtin) EmailDomain(locale core.Locale, rng *rand.Rand) string {
	if locale == core.LocaleRU {
		return pick(rng, ruEmailDomains)
	}
	return pick(rng, enEmailDomains)
}

func (builtin) URIScheme(rng *rand.Rand) string {
	return pick(rng, uriSchemes)
}

func (builtin) URIDomain(rng *rand.Rand) string {
	return pick(rng, enEmailDomains)
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
