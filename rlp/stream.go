package rlp

import (
	"io"
	"math/big"

	"github.com/holiman/uint256"
)

// Stream provides incremental access to a buffer holding one or more
// RLP-encoded values. Every item is validated for canonical form as it is
// read. A Stream is not safe for concurrent use.
type Stream struct {
	data   []byte
	pos    int
	limits Limits
	stack  []listFrame // for List/ListEnd scoping
}

type listFrame struct {
	end int // exclusive end position of the current list
}

// NewStream creates a new RLP stream over everything r produces.
func NewStream(r io.Reader, l Limits) (*Stream, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewStreamBytes(data, l), nil
}

// NewStreamBytes creates a stream over b. The stream does not copy b.
func NewStreamBytes(b []byte, l Limits) *Stream {
	return &Stream{data: b, limits: l}
}

// Pos returns the offset of the next unread byte.
func (s *Stream) Pos() int { return s.pos }

// More reports whether another value can be read at the current level:
// before the end of the input, or before the end of the innermost open list.
func (s *Stream) More() bool {
	return s.pos < s.limit()
}

// Kind reads the RLP type tag and content size of the next value without consuming it.
func (s *Stream) Kind() (Kind, uint64, error) {
	h, err := s.peek()
	if err != nil {
		return 0, 0, err
	}
	return h.kind, h.size, nil
}

func (s *Stream) peek() (header, error) {
	lim := s.limit()
	if s.pos >= lim {
		if len(s.stack) > 0 {
			return header{}, ErrEOL
		}
		return header{}, io.EOF
	}
	h, err := readHeader(s.data, s.pos, lim)
	if err != nil {
		return header{}, err
	}
	if err := s.limits.checkSize(h, s.pos); err != nil {
		return header{}, err
	}
	return h, nil
}

// Raw reads the next value and returns its complete encoding, prefix included.
func (s *Stream) Raw() ([]byte, error) {
	h, err := s.peek()
	if err != nil {
		return nil, err
	}
	if h.kind == List {
		// Validate the whole subtree before handing it out.
		_, n, err := NewDecoder(s.limits).decode(s.data, s.pos, s.limit(), len(s.stack))
		if err != nil {
			return nil, err
		}
		raw := s.data[s.pos : s.pos+n]
		s.pos += n
		return raw, nil
	}
	end := s.pos + h.headLen + int(h.size)
	raw := s.data[s.pos:end]
	s.pos = end
	return raw, nil
}

// Bytes reads an RLP string value and returns its content. The result
// aliases the stream's buffer.
func (s *Stream) Bytes() ([]byte, error) {
	h, err := s.peek()
	if err != nil {
		return nil, err
	}
	if h.kind == List {
		return nil, ErrExpectedString
	}
	start := s.pos + h.headLen
	end := start + int(h.size)
	s.pos = end
	return s.data[start:end], nil
}

// Text reads an RLP string value as UTF-8 text.
func (s *Stream) Text() (string, error) {
	b, err := s.Bytes()
	if err != nil {
		return "", err
	}
	return Bytes(b).Text()
}

// Uint64 reads an RLP-encoded unsigned integer.
func (s *Stream) Uint64() (uint64, error) {
	b, err := s.Bytes()
	if err != nil {
		return 0, err
	}
	return Bytes(b).Uint64()
}

// BigInt reads an RLP-encoded big integer.
func (s *Stream) BigInt() (*big.Int, error) {
	b, err := s.Bytes()
	if err != nil {
		return nil, err
	}
	return Bytes(b).BigInt()
}

// Uint256 reads an RLP-encoded 256-bit integer.
func (s *Stream) Uint256() (*uint256.Int, error) {
	b, err := s.Bytes()
	if err != nil {
		return nil, err
	}
	return Bytes(b).Uint256()
}

// Value decodes the next complete value, whatever its kind.
func (s *Stream) Value() (Value, error) {
	if _, err := s.peek(); err != nil {
		return Value{}, err
	}
	v, n, err := NewDecoder(s.limits).decode(s.data, s.pos, s.limit(), len(s.stack))
	if err != nil {
		return Value{}, err
	}
	s.pos += n
	return v, nil
}

// List reads the start of an RLP list and enters a scope for reading list items.
// Subsequent Bytes/Uint64/etc. calls read from within the list. Call ListEnd
// when done reading.
func (s *Stream) List() (uint64, error) {
	h, err := s.peek()
	if err != nil {
		return 0, err
	}
	if h.kind != List {
		return 0, ErrExpectedList
	}
	if err := s.limits.checkDepth(len(s.stack)+1, s.pos); err != nil {
		return 0, err
	}
	payload := s.pos + h.headLen
	s.stack = append(s.stack, listFrame{end: payload + int(h.size)})
	s.pos = payload
	return h.size, nil
}

// ListEnd verifies that all items in the current list have been read.
func (s *Stream) ListEnd() error {
	if len(s.stack) == 0 {
		return ErrExpectedList
	}
	top := s.stack[len(s.stack)-1]
	if s.pos != top.end {
		return decodeErr(ErrTrailingData, s.pos, "unread list elements")
	}
	s.stack = s.stack[:len(s.stack)-1]
	return nil
}

// limit returns the current read boundary.
func (s *Stream) limit() int {
	if len(s.stack) > 0 {
		return s.stack[len(s.stack)-1].end
	}
	return len(s.data)
}
