package rlp

// Limits bounds the resources a single encode or decode may use. A zero field
// means no limit.
type Limits struct {
	// MaxDepth is the deepest list nesting accepted. The outermost list is at
	// depth 1. Exceeding it fails with ErrDepthExceeded.
	MaxDepth int `toml:"max_depth"`

	// MaxStringSize caps the declared length of any byte string.
	MaxStringSize uint64 `toml:"max_string_size"`

	// MaxListSize caps the declared payload length of any list.
	MaxListSize uint64 `toml:"max_list_size"`
}

// DefaultLimits returns the limits used by the package-level functions:
// nesting depth is unbounded and sizes are bounded only by the input.
func DefaultLimits() Limits {
	return Limits{}
}

// UntrustedLimits returns limits suited to input from unauthenticated peers.
func UntrustedLimits() Limits {
	return Limits{
		MaxDepth:      1024,
		MaxStringSize: 16 << 20,
		MaxListSize:   64 << 20,
	}
}

func (l Limits) checkDepth(depth, pos int) error {
	if l.MaxDepth > 0 && depth > l.MaxDepth {
		return decodeErr(ErrDepthExceeded, pos, "list nesting exceeds configured depth")
	}
	return nil
}

func (l Limits) checkSize(h header, pos int) error {
	switch h.kind {
	case String:
		if l.MaxStringSize > 0 && h.size > l.MaxStringSize {
			return decodeErr(ErrValueTooLarge, pos, "string exceeds configured size")
		}
	case List:
		if l.MaxListSize > 0 && h.size > l.MaxListSize {
			return decodeErr(ErrValueTooLarge, pos, "list payload exceeds configured size")
		}
	}
	return nil
}
