package custombin

import (
	"io"

	"pganonymize/internal/core"
)

// MagicHeader is the 5-byte signature every custom-format dump begins
// with.
var MagicHeader = []byte("PGDMP")

// CompressionMethod names the codec a data block is compressed with.
type CompressionMethod int

const (
	CompressionNone CompressionMethod = iota
	CompressionZlib
	CompressionLz4
	CompressionZstd
)

func (c CompressionMethod) String() string {
	switch c {
	case CompressionZlib:
		return "zlib"
	case CompressionLz4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return "none"
	}
}

// Header is the parsed fixed-format preamble of a custom dump.
type Header struct {
	Vmaj, Vmin, Vrev int
	IntSize          int
	OffsetSize       int
	Format           byte
	Compression      CompressionMethod
	CompressionRaw   int32
}

// IsVersionAtLeast reports whether the header's version is >= the given
// (major, minor, rev) tuple, lexicographically.
func (h *Header) IsVersionAtLeast(maj, min, rev int) bool {
	if h.Vmaj != maj {
		return h.Vmaj > maj
	}
	if h.Vmin != min {
		return h.Vmin > min
	}
	return h.Vrev >= rev
}

// ParseHeader reads the magic, version, sizing, format, and compression
// fields, bypassing every byte read to w. initialBytes are the bytes
// already consumed from r for format sniffing and must be re-emitted.
func ParseHeader(r io.Reader, w io.Writer, initialBytes []byte) (*Header, error) {
	if _, err := w.Write(initialBytes); err != nil {
		return nil, core.Wrap(core.KindIO, "writing bypassed magic prefix", err)
	}

	if remaining := len(MagicHeader) - len(initialBytes); remaining > 0 {
		buf, err := ReadExact(r, remaining)
		if err != nil {
			return nil, core.Wrap(core.KindIO, "reading magic header", err)
		}
		if _, err := w.Write(buf); err != nil {
			return nil, core.Wrap(core.KindIO, "writing magic header", err)
		}
		full := append(append([]byte{}, initialBytes...), buf...)
		if string(full) != string(MagicHeader) {
			return nil, core.Wrap(core.KindInvalidFormat, "invalid PGDMP magic header", nil)
		}
	} else if len(initialBytes) == len(MagicHeader) && string(initialBytes) != string(MagicHeader) {
		return nil, core.Wrap(core.KindInvalidFormat, "invalid PGDMP magic header", nil)
	}

	vmaj, err := readVersionByte(r, w)
	if err != nil {
		return nil, err
	}
	vmin, err := readVersionByte(r, w)
	if err != nil {
		return nil, err
	}
	vrev, err := readVersionByte(r, w)
	if err != nil {
		return nil, err
	}

	h := &Header{Vmaj: vmaj, Vmin: vmin, Vrev: vrev}
	if vmaj < 1 || (vmaj == 1 && vmin < 12) || h.IsVersionAtLeast(1, 17, 0) {
		return nil, core.Wrapf(core.KindUnsupportedVersion, nil, "%d.%d.%d", vmaj, vmin, vrev)
	}

	intSizeByte, err := readVersionByte(r, w)
	if err != nil {
		return nil, err
	}
	offsetSizeByte, err := readVersionByte(r, w)
	if err != nil {
		return nil, err
	}
	formatByte, err := readVersionByte(r, w)
	if err != nil {
		return nil, err
	}
	if formatByte != 1 {
		return nil, core.Wrapf(core.KindInvalidFormat, nil, "expected custom format (1), got %d", formatByte)
	}

	dio := New(intSizeByte, offsetSizeByte)

	h.IntSize = intSizeByte
	h.OffsetSize = offsetSizeByte
	h.Format = formatByte

	if h.IsVersionAtLeast(1, 15, 0) {
		b, err := ReadByte(r)
		if err != nil {
			return nil, core.Wrap(core.KindIO, "reading compression method byte", err)
		}
		if _, err := w.Write([]byte{b}); err != nil {
			return nil, core.Wrap(core.KindIO, "writing compression method byte", err)
		}
		method, err := compressionFromByte(b)
		if err != nil {
			return nil, err
		}
		h.Compression = method
		h.CompressionRaw = int32(b)
	} else {
		level, err := dio.ReadIntBypass(r, w)
		if err != nil {
			return nil, core.Wrap(core.KindIO, "reading compression level", err)
		}
		method, err := compressionFromLevel(level)
		if err != nil {
			return nil, err
		}
		h.Compression = method
		h.CompressionRaw = level
	}

	for i := 0; i < 6; i++ {
		if _, err := dio.ReadIntBypass(r, w); err != nil {
			return nil, core.Wrap(core.KindIO, "reading timestamp field", err)
		}
	}

	if _, _, err := dio.ReadStringBypass(r, w); err != nil {
		return nil, core.Wrap(core.KindIO, "reading database name", err)
	}
	if _, _, err := dio.ReadStringBypass(r, w); err != nil {
		return nil, core.Wrap(core.KindIO, "reading server version", err)
	}
	if _, _, err := dio.ReadStringBypass(r, w); err != nil {
		return nil, core.Wrap(core.KindIO, "reading dump version", err)
	}

	return h, nil
}

func readVersionByte(r io.Reader, w io.Writer) (int, error) {
	b, err := ReadByte(r)
	if err != nil {
		return 0, core.Wrap(core.KindIO, "reading header byte", err)
	}
	if _, err := w.Write([]byte{b}); err != nil {
		return 0, core.Wrap(core.KindIO, "writing header byte", err)
	}
	return int(b), nil
}

// compressionFromByte maps the v1.15+ single compression byte, per this
// implementation's adopted mapping (modern upstream order, not the
// legacy Raw/Zlib ordering some older tooling used).
func compressionFromByte(b byte) (CompressionMethod, error) {
	switch b {
	case 0:
		return CompressionNone, nil
	case 1:
		return CompressionZlib, nil
	case 2:
		return CompressionLz4, nil
	case 3:
		return CompressionZstd, nil
	default:
		return 0, core.Wrapf(core.KindInvalidFormat, nil, "unknown compression method byte %d", b)
	}
}

// compressionFromLevel maps the pre-1.15 signed zlib level field: 0 is
// none, -1 is zlib at its default level, 1..9 is zlib at that level,
// anything else is invalid.
func compressionFromLevel(level int32) (CompressionMethod, error) {
	switch {
	case level == 0:
		return CompressionNone, nil
	case level == -1:
		return CompressionZlib, nil
	case level >= 1 && level <= 9:
		return CompressionZlib, nil
	default:
		return 0, core.Wrapf(core.KindInvalidFormat, nil, "invalid compression level %d", level)
	}
}
