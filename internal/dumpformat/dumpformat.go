// Package dumpformat sniffs whether a dump stream is the custom binary
// format or plain SQL text.
package dumpformat

import "pganonymize/internal/custombin"

// Format is the detected dump encoding.
type Format int

const (
	FormatPlain Format = iota
	FormatCustom
)

// Detect inspects the first bytes read from a stream (up to the 5-byte
// "PGDMP" magic) and reports which format they indicate. Any input that
// begins with the 4-byte "PGDM" prefix (including a 4-byte peek cut short
// by EOF) is also treated as custom, since nothing else in the plain SQL
// format begins that way.
func Detect(peeked []byte) Format {
	magic := custombin.MagicHeader
	if len(peeked) >= len(magic) && string(peeked[:len(magic)]) == string(magic) {
		return FormatCustom
	}
	if len(peeked) > 0 && hasPrefix(peeked, magic[:4]) {
		return FormatCustom
	}
	return FormatPlain
}

func hasPrefix(b, prefix []byte) bool {
	if len(b) < len(prefix) {
		return false
	}
	return string(b[:len(prefix)]) == string(prefix)
}
