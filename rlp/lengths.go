package rlp

import (
	"fmt"
	"math/bits"
)

// Prefix byte ranges of the wire format.
const (
	shortStringOffset = 0x80 // 0x80..0xb7: string of 0-55 bytes
	longStringOffset  = 0xb7 // 0xb8..0xbf: string with 1-8 length bytes
	shortListOffset   = 0xc0 // 0xc0..0xf7: list with 0-55 payload bytes
	longListOffset    = 0xf7 // 0xf8..0xff: list with 1-8 length bytes

	maxShortSize = 55
)

// minimalLen returns the number of bytes in the minimal big-endian form of n.
func minimalLen(n uint64) int {
	return (bits.Len64(n) + 7) / 8
}

// minimalBytes returns n as big-endian with no leading zero byte. Zero is the
// empty sequence.
func minimalBytes(n uint64) []byte {
	return appendMinimal(make([]byte, 0, minimalLen(n)), n)
}

func appendMinimal(dst []byte, n uint64) []byte {
	for i := minimalLen(n) - 1; i >= 0; i-- {
		dst = append(dst, byte(n>>(8*uint(i))))
	}
	return dst
}

// parseMinimal reads a long-form length field. The field must not start with a
// zero byte and its value must not fit the short form.
func parseMinimal(b []byte) (uint64, error) {
	if len(b) == 0 {
		return 0, ErrInsufficientData
	}
	if len(b) > 8 {
		return 0, ErrValueTooLarge
	}
	if b[0] == 0 {
		return 0, ErrNonCanonical
	}
	var n uint64
	for _, x := range b {
		n = n<<8 | uint64(x)
	}
	if n <= maxShortSize {
		return 0, ErrNonCanonical
	}
	return n, nil
}

// headSize returns the number of prefix bytes used for a payload of the given size.
func headSize(size uint64) int {
	if size <= maxShortSize {
		return 1
	}
	return 1 + minimalLen(size)
}

// appendHead writes the prefix for a string or list payload of the given size.
// offset is shortStringOffset or shortListOffset.
func appendHead(dst []byte, offset byte, size uint64) []byte {
	if size <= maxShortSize {
		return append(dst, offset+byte(size))
	}
	dst = append(dst, offset+maxShortSize+byte(minimalLen(size)))
	return appendMinimal(dst, size)
}

// stringSize returns the encoded size of the byte string b.
func stringSize(b []byte) int {
	if len(b) == 1 && b[0] < shortStringOffset {
		return 1
	}
	return headSize(uint64(len(b))) + len(b)
}

func appendString(dst, b []byte) []byte {
	if len(b) == 1 && b[0] < shortStringOffset {
		return append(dst, b[0])
	}
	dst = appendHead(dst, shortStringOffset, uint64(len(b)))
	return append(dst, b...)
}

// header describes the prefix of one encoded item.
type header struct {
	kind    Kind
	headLen int    // prefix and length-field bytes; 0 for the single-byte form
	size    uint64 // payload bytes
}

// readHeader parses the item starting at buf[pos]. end is the exclusive end of
// the enclosing list payload, or len(buf) at the top level. On success the
// whole item is guaranteed to lie within buf[pos:end].
func readHeader(buf []byte, pos, end int) (header, error) {
	if pos >= len(buf) {
		return header{}, decodeErr(ErrInsufficientData, pos, "missing prefix byte")
	}
	var h header
	b := buf[pos]
	switch {
	case b < shortStringOffset:
		h = header{kind: Byte, headLen: 0, size: 1}
	case b <= longStringOffset:
		h = header{kind: String, headLen: 1, size: uint64(b - shortStringOffset)}
	case b < shortListOffset:
		size, n, err := readSize(buf, pos, end, int(b-longStringOffset))
		if err != nil {
			return header{}, err
		}
		h = header{kind: String, headLen: 1 + n, size: size}
	case b <= longListOffset:
		h = header{kind: List, headLen: 1, size: uint64(b - shortListOffset)}
	default:
		size, n, err := readSize(buf, pos, end, int(b-longListOffset))
		if err != nil {
			return header{}, err
		}
		h = header{kind: List, headLen: 1 + n, size: size}
	}

	payload := pos + h.headLen
	if h.size > uint64(len(buf)-payload) {
		return header{}, decodeErr(ErrInsufficientData, pos,
			fmt.Sprintf("item needs %d payload bytes, %d remain", h.size, len(buf)-payload))
	}
	if payload+int(h.size) > end {
		return header{}, decodeErr(ErrTrailingData, pos, "element exceeds enclosing list payload")
	}
	if h.kind == String && h.size == 1 && buf[payload] < shortStringOffset {
		return header{}, decodeErr(ErrNonCanonical, pos,
			fmt.Sprintf("byte 0x%02x must be encoded without prefix", buf[payload]))
	}
	return h, nil
}

// readSize reads the lenOfLen-byte length field that follows the prefix at pos.
func readSize(buf []byte, pos, end, lenOfLen int) (uint64, int, error) {
	start := pos + 1
	if lenOfLen > len(buf)-start {
		return 0, 0, decodeErr(ErrInsufficientData, pos,
			fmt.Sprintf("length field needs %d bytes, %d remain", lenOfLen, len(buf)-start))
	}
	if start+lenOfLen > end {
		return 0, 0, decodeErr(ErrTrailingData, pos, "length field exceeds enclosing list payload")
	}
	field := buf[start : start+lenOfLen]
	size, err := parseMinimal(field)
	if err != nil {
		return 0, 0, decodeErr(err, pos, fmt.Sprintf("long-form length field 0x%x", field))
	}
	return size, lenOfLen, nil
}
