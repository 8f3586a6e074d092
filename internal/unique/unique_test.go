package unique

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryInsert(t *testing.T) {
	tr := New()
	assert.True(t, tr.TryInsert("a"))
	assert.False(t, tr.TryInsert("a"))
	assert.True(t, tr.TryInsert("b"))
}

func TestGenerateUniqueRetries(t *testing.T) {
	tr := New()
	values := []string{"a", "a", "a", "b"}
	i := 0
	gen := func() (string, error) {
		v := values[i]
		i++
		return v, nil
	}
	v, err := tr.GenerateUnique(gen)
	require.NoError(t, err)
	assert.Equal(t, "b", v)
}

func TestGenerateUniqueExhausted(t *testing.T) {
	tr := New()
	tr.TryInsert("x")
	_, err := tr.GenerateUnique(func() (string, error) { return "x", nil })
	require.Error(t, err)
}

func TestGenerateUniquePropagatesGenError(t *testing.T) {
	tr := New()
	boom := errors.New("boom")
	_, err := tr.GenerateUnique(func() (string, error) { return "", boom })
	require.ErrorIs(t, err, boom)
}

func TestClear(t *testing.T) {
	tr := New()
	tr.TryInsert("a")
	tr.Clear()
	assert.True(t, tr.TryInsert("a"))
}
