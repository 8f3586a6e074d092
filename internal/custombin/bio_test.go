package custombin

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadIntRoundTrip(t *testing.T) {
	dio := New(4, 8)
	for _, v := range []int32{0, 1, -1, 12345, -12345, 2147483647, -2147483647} {
		var buf bytes.Buffer
		require.NoError(t, dio.WriteInt(&buf, v))
		got, err := dio.ReadInt(&buf)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestReadIntBypassCopiesBytes(t *testing.T) {
	dio := New(4, 8)
	var src bytes.Buffer
	require.NoError(t, dio.WriteInt(&src, 42))

	var bypass bytes.Buffer
	v, err := dio.ReadIntBypass(&src, &bypass)
	require.NoError(t, err)
	assert.Equal(t, int32(42), v)
	assert.Equal(t, 5, bypass.Len())
}

func TestStringRoundTrip(t *testing.T) {
	dio := New(4, 8)
	var buf bytes.Buffer
	require.NoError(t, dio.WriteInt(&buf, int32(len("hello"))))
	buf.WriteString("hello")

	s, ok, err := dio.ReadString(&buf)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", s)
}

func TestStringZeroLengthIsAbsent(t *testing.T) {
	dio := New(4, 8)
	var buf bytes.Buffer
	require.NoError(t, dio.WriteInt(&buf, 0))

	_, ok, err := dio.ReadString(&buf)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOffsetRoundTrip(t *testing.T) {
	dio := New(4, 8)
	var buf bytes.Buffer
	offset := int64(123456789)
	for i := 0; i < dio.OffsetSize; i++ {
		buf.WriteByte(byte((offset >> (uint(i) * 8)) & 0xFF))
	}
	got, err := dio.ReadOffset(&buf)
	require.NoError(t, err)
	assert.Equal(t, offset, got)
}
