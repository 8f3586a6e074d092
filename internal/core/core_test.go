package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocale(t *testing.T) {
	assert.Equal(t, LocaleRU, ParseLocale("ru"))
	assert.Equal(t, LocaleRU, ParseLocale("Russian"))
	assert.Equal(t, LocaleEN, ParseLocale("en"))
	assert.Equal(t, LocaleEN, ParseLocale("unknown"))
	assert.Equal(t, LocaleEN, ParseLocale(""))
}

func TestLocaleString(t *testing.T) {
	assert.Equal(t, "en", LocaleEN.String())
	assert.Equal(t, "ru", LocaleRU.String())
}

func TestErrorFormatting(t *testing.T) {
	err := Wrap(KindInvalidFormat, "bad magic", nil)
	assert.Equal(t, "invalid-format: bad magic", err.Error())

	wrapped := Wrapf(KindIO, errors.New("boom"), "chunk %d", 3)
	require.Error(t, wrapped)
	assert.Equal(t, "io: chunk 3", wrapped.Error())
	assert.True(t, errors.Is(wrapped, wrapped.Err))
}
