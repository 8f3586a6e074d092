package mutation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pganonymize/internal/core"
)

func TestFirstNameLastName(t *testing.T) {
	c := newTestContext(nil, core.LocaleEN)
	first, err := FirstName(c)
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	last, err := LastName(c)
	require.NoError(t, err)
	assert.NotEmpty(t, last)
}

func TestFullNameEnglishHasNoPatronymic(t *testing.T) {
	c := newTestContext(nil, core.LocaleEN)
	name, err := FullName(c)
	require.NoError(t, err)
	assert.Equal(t, 2, len(strings.Split(name, " ")))
}

func TestFullNameRussianHasPatronymic(t *testing.T) {
	c := newTestContext(nil, core.LocaleRU)
	name, err := FullName(c)
	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(name, " ")))
}

func TestMiddleNameRequiresRussianLocale(t *testing.T) {
	c := newTestContext(nil, core.LocaleEN)
	_, err := MiddleName(c)
	require.Error(t, err)
	var e *core.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, core.KindMutationError, e.Kind)
}

func TestMiddleNameRussian(t *testing.T) {
	c := newTestContext(nil, core.LocaleRU)
	v, err := MiddleName(c)
	require.NoError(t, err)
	assert.NotEmpty(t, v)
}
