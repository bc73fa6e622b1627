package rlp

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrUnsupportedType is returned when a Go value has no RLP representation,
	// such as a negative integer, a float or a map.
	ErrUnsupportedType = errors.New("rlp: unsupported type")

	// ErrInsufficientData is returned when the input ends before a header or
	// payload is complete.
	ErrInsufficientData = errors.New("rlp: insufficient data")

	// ErrNonCanonical is returned for input that parses but is not the
	// minimal encoding of its value.
	ErrNonCanonical = errors.New("rlp: non-canonical encoding")

	// ErrTrailingData is returned when bytes remain after a complete value, or
	// when a list's elements do not exactly fill its declared payload.
	ErrTrailingData = errors.New("rlp: trailing data")

	// ErrDepthExceeded is returned when list nesting exceeds Limits.MaxDepth.
	ErrDepthExceeded = errors.New("rlp: nesting depth exceeded")

	// ErrValueTooLarge is returned when a declared length exceeds a
	// configured limit.
	ErrValueTooLarge = errors.New("rlp: value too large")

	// ErrExpectedString is returned when a list is encountered where a string was expected.
	ErrExpectedString = errors.New("rlp: expected string")

	// ErrExpectedList is returned when a string is encountered where a list was expected.
	ErrExpectedList = errors.New("rlp: expected list")

	// ErrCanonInt is returned when an integer uses non-canonical encoding (leading zeros).
	ErrCanonInt = errors.New("rlp: non-canonical integer encoding")

	// ErrUint64Range is returned when a decoded integer exceeds the target range.
	ErrUint64Range = errors.New("rlp: integer overflow")

	// ErrInvalidText is returned when a string read as text is not valid UTF-8.
	ErrInvalidText = errors.New("rlp: invalid UTF-8 text")

	// ErrEOL is returned when the end of the current list has been reached.
	ErrEOL = errors.New("rlp: end of list")
)

// Phase names the operation an Error was raised by.
type Phase string

const (
	PhaseEncode Phase = "encode"
	PhaseDecode Phase = "decode"
)

// Error carries the position and context of a codec failure. It unwraps to
// one of the package sentinels, so callers match it with errors.Is.
type Error struct {
	Phase  Phase
	Kind   error
	Offset int // byte offset of the offending header, -1 if not applicable
	Detail string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Offset >= 0 {
		b.WriteString(" at offset ")
		b.WriteString(strconv.Itoa(e.Offset))
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func decodeErr(kind error, offset int, detail string) *Error {
	return &Error{Phase: PhaseDecode, Kind: kind, Offset: offset, Detail: detail}
}

func encodeErr(kind error, detail string) *Error {
	return &Error{Phase: PhaseEncode, Kind: kind, Offset: -1, Detail: detail}
}
