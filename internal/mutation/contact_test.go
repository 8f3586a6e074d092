package mutation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pganonymize/internal/core"
)

func TestEmailShape(t *testing.T) {
	c := newTestContext(nil, core.LocaleEN)
	v, err := Email(c)
	require.NoError(t, err)
	assert.Contains(t, v, "@")
	assert.Contains(t, v, ".")
}

func TestPhoneNumberFillsMask(t *testing.T) {
	c := newTestContext(map[string]any{"mask": "+1 (XXX) XXX-XXXX"}, core.LocaleEN)
	v, err := PhoneNumber(c)
	require.NoError(t, err)
	assert.Len(t, v, len("+1 (XXX) XXX-XXXX"))
	assert.True(t, strings.HasPrefix(v, "+1 ("))
}

func TestPhoneNumberRequiresMask(t *testing.T) {
	c := newTestContext(nil, core.LocaleEN)
	_, err := PhoneNumber(c)
	require.Error(t, err)
	var e *core.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, core.KindMissingParameter, e.Kind)
}

func TestAddressNonEmpty(t *testing.T) {
	c := newTestContext(nil, core.LocaleEN)
	v, err := Address(c)
	require.NoError(t, err)
	assert.NotEmpty(t, v)
}

func TestDeterministicPhoneNumberRequiresSecret(t *testing.T) {
	c := newTestContext(nil, core.LocaleEN)
	c.CurrentValue = "+1 555 123 4567"
	_, err := DeterministicPhoneNumber(c)
	require.Error(t, err)
	var e *core.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, core.KindMutationError, e.Kind)
}

func TestDeterministicPhoneNumberIsDeterministic(t *testing.T) {
	c := newTestContext(nil, core.LocaleEN)
	c.CurrentValue = "+1 555 123 4567"
	c.Secrets["SECRET_KEY"] = "topsecret"

	first, err := DeterministicPhoneNumber(c)
	require.NoError(t, err)

	c2 := newTestContext(nil, core.LocaleEN)
	c2.CurrentValue = "+1 555 123 4567"
	c2.Secrets["SECRET_KEY"] = "topsecret"
	second, err := DeterministicPhoneNumber(c2)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, c.CurrentValue, first)
}

func TestDeterministicPhoneNumberRequiresEnoughDigits(t *testing.T) {
	c := newTestContext(nil, core.LocaleEN)
	c.CurrentValue = "123"
	c.Secrets["SECRET_KEY"] = "topsecret"
	_, err := DeterministicPhoneNumber(c)
	require.Error(t, err)
}
