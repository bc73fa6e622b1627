// Package rlp implements the Recursive Length Prefix encoding used by
// Ethereum protocols.
//
// Every value is either a byte string or a list of values. The encoding of a
// value is unique: the encoder always produces the minimal form and the
// decoder rejects any other form with ErrNonCanonical.
//
//	prefix      meaning
//	0x00..0x7f  the byte itself, a one-byte string
//	0x80..0xb7  string of 0-55 bytes follows
//	0xb8..0xbf  1-8 byte big-endian length, then the string
//	0xc0..0xf7  list payload of 0-55 bytes follows
//	0xf8..0xff  1-8 byte big-endian length, then the list payload
//
// The package offers two layers. Value, EncodeValue, DecodeOne and
// DecodeExact work on the value tree directly. EncodeToBytes and DecodeBytes
// pack and unpack ordinary Go values (integers, strings, byte slices,
// slices, arrays and structs) through that tree, much like a generic binary
// serializer. Stream reads a buffer item by item and supports inputs holding
// several concatenated values.
//
// Encoding and decoding keep nested lists on an explicit stack rather than
// the goroutine stack. Limits bounds nesting depth and declared sizes for
// untrusted input.
package rlp
