package rlp

// RawValue represents an encoded RLP value and can be used to delay
// RLP decoding or to precompute an encoding.
type RawValue []byte

// ListSize returns the encoded size of an RLP list with the given
// content size.
func ListSize(contentSize uint64) uint64 {
	return uint64(headSize(contentSize)) + contentSize
}

// IntSize returns the encoded size of the integer x.
func IntSize(x uint64) int {
	if x < shortStringOffset {
		return 1
	}
	return 1 + minimalLen(x)
}

// Split returns the content of the first RLP value and any
// bytes after the value as subslices of b.
func Split(b []byte) (k Kind, content, rest []byte, err error) {
	h, err := readHeader(b, 0, len(b))
	if err != nil {
		return 0, nil, b, err
	}
	end := h.headLen + int(h.size)
	return h.kind, b[h.headLen:end], b[end:], nil
}

// SplitString splits b into the content of an RLP string
// and any remaining bytes after the string.
func SplitString(b []byte) (content, rest []byte, err error) {
	k, content, rest, err := Split(b)
	if err != nil {
		return nil, b, err
	}
	if k == List {
		return nil, b, ErrExpectedString
	}
	return content, rest, nil
}

// SplitUint64 decodes an integer at the beginning of b.
// It also returns the remaining data after the integer in 'rest'.
func SplitUint64(b []byte) (x uint64, rest []byte, err error) {
	content, rest, err := SplitString(b)
	if err != nil {
		return 0, b, err
	}
	x, err = Bytes(content).Uint64()
	if err != nil {
		return 0, b, err
	}
	return x, rest, nil
}

// SplitList splits b into the content of a list and any remaining
// bytes after the list.
func SplitList(b []byte) (content, rest []byte, err error) {
	k, content, rest, err := Split(b)
	if err != nil {
		return nil, b, err
	}
	if k != List {
		return nil, b, ErrExpectedList
	}
	return content, rest, nil
}

// CountValues counts the number of encoded values in b. Only the headers of
// the top-level values are checked.
func CountValues(b []byte) (int, error) {
	i := 0
	for ; len(b) > 0; i++ {
		_, _, rest, err := Split(b)
		if err != nil {
			return 0, err
		}
		b = rest
	}
	return i, nil
}

// AppendUint64 appends the RLP encoding of i to b, and returns the resulting slice.
func AppendUint64(b []byte, i uint64) []byte {
	if i == 0 {
		return append(b, shortStringOffset)
	}
	if i < shortStringOffset {
		return append(b, byte(i))
	}
	b = append(b, shortStringOffset+byte(minimalLen(i)))
	return appendMinimal(b, i)
}

// AppendBytes appends the RLP encoding of the byte string data to dst.
func AppendBytes(dst, data []byte) []byte {
	return appendString(dst, data)
}

// AppendListHeader appends an RLP list header for a payload of the given
// size to dst. The caller is responsible for appending exactly payloadSize
// bytes of encoded list items afterward.
func AppendListHeader(dst []byte, payloadSize uint64) []byte {
	return appendHead(dst, shortListOffset, payloadSize)
}

// WrapList wraps an already-encoded RLP payload in a list header.
func WrapList(payload []byte) []byte {
	out := make([]byte, 0, ListSize(uint64(len(payload))))
	out = AppendListHeader(out, uint64(len(payload)))
	return append(out, payload...)
}
