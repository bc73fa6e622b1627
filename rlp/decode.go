package rlp

import (
	"fmt"
	"io"
)

// Decode reads an RLP-encoded value from r and stores it in the value pointed to by val.
// The input must hold exactly one value.
func Decode(r io.Reader, val interface{}) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return DecodeBytes(data, val)
}

// DecodeBytes decodes an RLP-encoded byte slice into the value pointed to by val.
// b must hold exactly one value.
func DecodeBytes(b []byte, val interface{}) error {
	v, err := DecodeExact(b)
	if err != nil {
		return err
	}
	return Unmarshal(v, val)
}

// DecodeOne decodes the value starting at buf[offset] and returns it together
// with the number of bytes it occupies.
func DecodeOne(buf []byte, offset int) (Value, int, error) {
	return defaultDecoder.DecodeOne(buf, offset)
}

// DecodeExact decodes buf, which must hold exactly one value.
func DecodeExact(buf []byte) (Value, error) {
	return defaultDecoder.DecodeExact(buf)
}

// Decoder decodes values subject to Limits. The zero Decoder has no limits.
// A Decoder holds no state between calls and is safe for concurrent use.
type Decoder struct {
	limits Limits
}

var defaultDecoder = &Decoder{}

// NewDecoder returns a Decoder enforcing l.
func NewDecoder(l Limits) *Decoder {
	return &Decoder{limits: l}
}

// Limits returns the limits d enforces.
func (d *Decoder) Limits() Limits { return d.limits }

// DecodeExact decodes buf, which must hold exactly one value.
func (d *Decoder) DecodeExact(buf []byte) (Value, error) {
	v, n, err := d.DecodeOne(buf, 0)
	if err != nil {
		return Value{}, err
	}
	if n != len(buf) {
		return Value{}, decodeErr(ErrTrailingData, n,
			fmt.Sprintf("%d bytes follow the top-level value", len(buf)-n))
	}
	return v, nil
}

// decFrame is an open list on the decode stack.
type decFrame struct {
	end   int // exclusive end of the list payload
	items []Value
}

// DecodeOne decodes the value starting at buf[offset]. Nested lists are
// tracked on an explicit stack, so the depth of the input is bounded by memory
// and Limits.MaxDepth only. Byte strings in the result are copies.
func (d *Decoder) DecodeOne(buf []byte, offset int) (Value, int, error) {
	if offset < 0 || offset > len(buf) {
		return Value{}, 0, decodeErr(ErrInsufficientData, offset, "offset outside input")
	}
	return d.decode(buf, offset, len(buf), 0)
}

// decode reads one value from buf[offset:bound]. depth is the number of
// lists already open around offset, for callers positioned inside a list.
func (d *Decoder) decode(buf []byte, offset, bound, depth int) (Value, int, error) {
	var stack []decFrame
	pos := offset
	for {
		end := bound
		if n := len(stack); n > 0 {
			top := &stack[n-1]
			if pos == top.end {
				v := ListOf(top.items...)
				stack = stack[:n-1]
				if len(stack) == 0 {
					return v, pos - offset, nil
				}
				parent := &stack[len(stack)-1]
				parent.items = append(parent.items, v)
				continue
			}
			end = top.end
		}

		h, err := readHeader(buf, pos, end)
		if err != nil {
			return Value{}, 0, err
		}
		if err := d.limits.checkSize(h, pos); err != nil {
			return Value{}, 0, err
		}
		if h.kind == List {
			if err := d.limits.checkDepth(depth+len(stack)+1, pos); err != nil {
				return Value{}, 0, err
			}
			payload := pos + h.headLen
			stack = append(stack, decFrame{end: payload + int(h.size)})
			pos = payload
			continue
		}

		start := pos + h.headLen
		str := make([]byte, h.size)
		copy(str, buf[start:])
		pos = start + int(h.size)
		v := Value{str: str}
		if len(stack) == 0 {
			return v, pos - offset, nil
		}
		top := &stack[len(stack)-1]
		top.items = append(top.items, v)
	}
}

// DecodeAll decodes a concatenation of values, as used by protocols that
// encode a sequence of fields back to back. Empty input yields no values.
func (d *Decoder) DecodeAll(buf []byte) ([]Value, error) {
	var out []Value
	for pos := 0; pos < len(buf); {
		v, n, err := d.DecodeOne(buf, pos)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		pos += n
	}
	return out, nil
}

// DecodeAll decodes a concatenation of values with the default limits.
func DecodeAll(buf []byte) ([]Value, error) {
	return defaultDecoder.DecodeAll(buf)
}
