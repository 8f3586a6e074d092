// Package custombin implements the PostgreSQL custom-format ("-Fc")
// dump binary encoding: a sign-magnitude integer scheme, length-prefixed
// strings, raw little-endian offsets, and the header/TOC/block framing
// built on top of them.
//
// Kept compatible with the project's existing tooling: integers are a
// sign byte followed by int_size little-endian magnitude bytes, matching
// how pg_dump/pg_restore themselves encode them.
package custombin

import (
	"io"
)

// IO holds the two dump-specific width parameters (read from the
// header) needed to decode every subsequent integer and offset.
type IO struct {
	IntSize    int
	OffsetSize int
}

// New returns an IO configured for the given widths.
func New(intSize, offsetSize int) *IO {
	return &IO{IntSize: intSize, OffsetSize: offsetSize}
}

// ReadByte reads a single byte.
func ReadByte(r io.Reader) (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadExact reads exactly n bytes.
func ReadExact(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadExactBypass reads exactly n bytes and copies them to w.
func ReadExactBypass(r io.Reader, w io.Writer, n int) ([]byte, error) {
	buf, err := ReadExact(r, n)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadInt reads a signed integer: one sign byte followed by IntSize
// little-endian magnitude bytes.
func (d *IO) ReadInt(r io.Reader) (int32, error) {
	sign, err := ReadByte(r)
	if err != nil {
		return 0, err
	}
	buf, err := ReadExact(r, d.IntSize)
	if err != nil {
		return 0, err
	}
	return decodeMagnitude(sign, buf), nil
}

// ReadIntBypass reads a signed integer and copies its raw bytes to w.
func (d *IO) ReadIntBypass(r io.Reader, w io.Writer) (int32, error) {
	var signBuf [1]byte
	if _, err := io.ReadFull(r, signBuf[:]); err != nil {
		return 0, err
	}
	if _, err := w.Write(signBuf[:]); err != nil {
		return 0, err
	}
	buf, err := ReadExact(r, d.IntSize)
	if err != nil {
		return 0, err
	}
	if _, err := w.Write(buf); err != nil {
		return 0, err
	}
	return decodeMagnitude(signBuf[0], buf), nil
}

func decodeMagnitude(sign byte, buf []byte) int32 {
	var value int32
	var shift uint
	for _, b := range buf {
		if b != 0 {
			value += int32(b) << shift
		}
		shift += 8
	}
	if sign != 0 {
		value = -value
	}
	return value
}

// WriteInt writes val as a sign byte followed by IntSize little-endian
// magnitude bytes.
func (d *IO) WriteInt(w io.Writer, val int32) error {
	v := val
	sign := byte(0)
	if v < 0 {
		v = -v
		sign = 1
	}
	if _, err := w.Write([]byte{sign}); err != nil {
		return err
	}
	buf := make([]byte, d.IntSize)
	for i := 0; i < d.IntSize; i++ {
		buf[i] = byte((v >> (uint(i) * 8)) & 0xFF)
	}
	_, err := w.Write(buf)
	return err
}

// ReadString reads a length-prefixed string. A non-positive length
// means no value ("", ok=false).
func (d *IO) ReadString(r io.Reader) (string, bool, error) {
	length, err := d.ReadInt(r)
	if err != nil {
		return "", false, err
	}
	if length <= 0 {
		return "", false, nil
	}
	buf, err := ReadExact(r, int(length))
	if err != nil {
		return "", false, err
	}
	return string(buf), true, nil
}

// ReadStringBypass reads a length-prefixed string and copies its bytes
// (length prefix included) to w.
func (d *IO) ReadStringBypass(r io.Reader, w io.Writer) (string, bool, error) {
	length, err := d.ReadIntBypass(r, w)
	if err != nil {
		return "", false, err
	}
	if length <= 0 {
		return "", false, nil
	}
	buf, err := ReadExactBypass(r, w, int(length))
	if err != nil {
		return "", false, err
	}
	return string(buf), true, nil
}

// ReadOffset reads a raw little-endian offset (no sign byte).
func (d *IO) ReadOffset(r io.Reader) (int64, error) {
	var offset int64
	for i := 0; i < d.OffsetSize; i++ {
		b, err := ReadByte(r)
		if err != nil {
			return 0, err
		}
		offset |= int64(b) << (uint(i) * 8)
	}
	return offset, nil
}

// ReadOffsetBypass reads a raw little-endian offset and copies its bytes
// to w.
func (d *IO) ReadOffsetBypass(r io.Reader, w io.Writer) (int64, error) {
	var offset int64
	for i := 0; i < d.OffsetSize; i++ {
		var buf [1]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		if _, err := w.Write(buf[:]); err != nil {
			return 0, err
		}
		offset |= int64(buf[0]) << (uint(i) * 8)
	}
	return offset, nil
}
