package rlp

import (
	"io"
	"sync"
)

// Encode writes the RLP encoding of val to w.
// val must be a supported type: Value, bool, unsigned integers, non-negative
// signed integers, *big.Int, *uint256.Int, []byte, string, slice/array, or
// struct (exported fields only).
func Encode(w io.Writer, val interface{}) error {
	b, err := EncodeToBytes(val)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// EncodeToBytes returns the RLP encoding of val. Nothing is encoded if any
// part of val is unsupported.
func EncodeToBytes(val interface{}) ([]byte, error) {
	v, err := ValueOf(val)
	if err != nil {
		return nil, err
	}
	return EncodeValue(v), nil
}

// EncodeValue returns the canonical encoding of v.
func EncodeValue(v Value) []byte {
	return AppendValue(nil, v)
}

// AppendValue appends the canonical encoding of v to dst.
func AppendValue(dst []byte, v Value) []byte {
	out, _ := defaultEncoder.appendValue(dst, v)
	return out
}

// Encoder encodes values subject to Limits. The zero Encoder has no limits.
// An Encoder is safe for concurrent use.
type Encoder struct {
	limits Limits
}

var defaultEncoder = &Encoder{}

// NewEncoder returns an Encoder enforcing l.
func NewEncoder(l Limits) *Encoder {
	return &Encoder{limits: l}
}

// Encode returns the canonical encoding of v, or ErrDepthExceeded if v nests
// deeper than the configured MaxDepth.
func (e *Encoder) Encode(v Value) ([]byte, error) {
	return e.appendValue(nil, v)
}

// Append is like Encode but appends to dst.
func (e *Encoder) Append(dst []byte, v Value) ([]byte, error) {
	return e.appendValue(dst, v)
}

// encState is the scratch space of one encoding. Lists are walked twice with
// an explicit stack: the first pass records every list payload size in
// pre-order, the second writes headers and strings in the same order.
type encState struct {
	sizes  []uint64
	frames []encFrame
}

type encFrame struct {
	items   []Value
	next    int
	slot    int    // index into sizes
	payload uint64 // running payload size, first pass only
}

var encStatePool = sync.Pool{
	New: func() interface{} { return new(encState) },
}

func (e *Encoder) appendValue(dst []byte, v Value) ([]byte, error) {
	if !v.list {
		return appendString(dst, v.str), nil
	}
	st := encStatePool.Get().(*encState)
	defer func() {
		st.reset()
		encStatePool.Put(st)
	}()

	if err := st.measure(v, e.limits.MaxDepth); err != nil {
		return nil, err
	}
	total := headSize(st.sizes[0]) + int(st.sizes[0])
	if cap(dst)-len(dst) < total {
		grown := make([]byte, len(dst), len(dst)+total)
		copy(grown, dst)
		dst = grown
	}
	return st.write(dst, v), nil
}

// measure computes the payload size of every list in v.
func (st *encState) measure(v Value, maxDepth int) error {
	st.sizes = append(st.sizes, 0)
	st.frames = append(st.frames, encFrame{items: v.items, slot: 0})
	for len(st.frames) > 0 {
		top := &st.frames[len(st.frames)-1]
		if top.next == len(top.items) {
			st.sizes[top.slot] = top.payload
			size := uint64(headSize(top.payload)) + top.payload
			st.frames = st.frames[:len(st.frames)-1]
			if len(st.frames) > 0 {
				st.frames[len(st.frames)-1].payload += size
			}
			continue
		}
		item := top.items[top.next]
		top.next++
		if !item.list {
			top.payload += uint64(stringSize(item.str))
			continue
		}
		if maxDepth > 0 && len(st.frames) >= maxDepth {
			return encodeErr(ErrDepthExceeded, "list nesting exceeds configured depth")
		}
		st.sizes = append(st.sizes, 0)
		st.frames = append(st.frames, encFrame{items: item.items, slot: len(st.sizes) - 1})
	}
	return nil
}

// write emits v using the sizes recorded by measure.
func (st *encState) write(dst []byte, v Value) []byte {
	slot := 0
	dst = appendHead(dst, shortListOffset, st.sizes[slot])
	slot++
	st.frames = append(st.frames[:0], encFrame{items: v.items})
	for len(st.frames) > 0 {
		top := &st.frames[len(st.frames)-1]
		if top.next == len(top.items) {
			st.frames = st.frames[:len(st.frames)-1]
			continue
		}
		item := top.items[top.next]
		top.next++
		if !item.list {
			dst = appendString(dst, item.str)
			continue
		}
		dst = appendHead(dst, shortListOffset, st.sizes[slot])
		slot++
		st.frames = append(st.frames, encFrame{items: item.items})
	}
	return dst
}

func (st *encState) reset() {
	st.sizes = st.sizes[:0]
	// Drop references to caller values before pooling.
	clear(st.frames[:cap(st.frames)])
	st.frames = st.frames[:0]
}
