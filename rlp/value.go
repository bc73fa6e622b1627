package rlp

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Kind represents the type of an RLP value.
type Kind int

const (
	Byte   Kind = iota // Single byte in [0x00, 0x7f], as reported by Stream.Kind.
	String             // RLP string (including empty string).
	List               // RLP list.
)

func (k Kind) String() string {
	switch k {
	case Byte:
		return "Byte"
	case String:
		return "String"
	case List:
		return "List"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Value is a decoded RLP item: either a byte string or a list of values.
// The zero Value is the empty string.
//
// Values are treated as immutable once built. A list exclusively owns its
// items; constructors do not copy, so callers must not modify slices they
// passed in afterwards.
type Value struct {
	list  bool
	str   []byte
	items []Value
}

// Bytes returns a string value holding b.
func Bytes(b []byte) Value {
	return Value{str: b}
}

// Text returns a string value holding the UTF-8 bytes of s.
func Text(s string) Value {
	return Value{str: []byte(s)}
}

// ListOf returns a list value holding items in order.
func ListOf(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{list: true, items: items}
}

// Kind reports String or List.
func (v Value) Kind() Kind {
	if v.list {
		return List
	}
	return String
}

// IsList reports whether v is a list.
func (v Value) IsList() bool { return v.list }

// Bytes returns the content of a string value, or nil for a list.
func (v Value) Bytes() []byte {
	if v.list {
		return nil
	}
	return v.str
}

// Items returns the elements of a list value, or nil for a string.
func (v Value) Items() []Value {
	if !v.list {
		return nil
	}
	return v.items
}

// Len returns the number of bytes of a string or the number of items of a list.
func (v Value) Len() int {
	if v.list {
		return len(v.items)
	}
	return len(v.str)
}

// Text returns a string value's content as text. It fails for lists and for
// content that is not valid UTF-8.
func (v Value) Text() (string, error) {
	if v.list {
		return "", ErrExpectedString
	}
	if !utf8.Valid(v.str) {
		return "", ErrInvalidText
	}
	return string(v.str), nil
}

// Equal reports whether v and o are the same tree.
func (v Value) Equal(o Value) bool {
	type pair struct{ a, b Value }
	work := []pair{{v, o}}
	for len(work) > 0 {
		p := work[len(work)-1]
		work = work[:len(work)-1]
		if p.a.list != p.b.list {
			return false
		}
		if !p.a.list {
			if !bytes.Equal(p.a.str, p.b.str) {
				return false
			}
			continue
		}
		if len(p.a.items) != len(p.b.items) {
			return false
		}
		for i := range p.a.items {
			work = append(work, pair{p.a.items[i], p.b.items[i]})
		}
	}
	return true
}

// String renders v in the bracketed notation used by rlpdump: strings of
// printable ASCII are quoted, other strings are hex, lists are bracketed.
func (v Value) String() string {
	var b strings.Builder
	v.format(&b)
	return b.String()
}

func (v Value) format(b *strings.Builder) {
	if !v.list {
		if isPrintable(v.str) {
			fmt.Fprintf(b, "%q", v.str)
		} else {
			fmt.Fprintf(b, "0x%x", v.str)
		}
		return
	}
	b.WriteByte('[')
	for i, item := range v.items {
		if i > 0 {
			b.WriteString(", ")
		}
		item.format(b)
	}
	b.WriteByte(']')
}

func isPrintable(s []byte) bool {
	if len(s) == 0 {
		return false
	}
	for _, c := range s {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}
