// encoder_pool.go provides a pooled RLP encoder for high-throughput
// encoding scenarios such as packing many small records in a loop.
// It uses sync.Pool to reuse encoder buffers, reducing GC pressure.

package rlp

import (
	"sync"
	"sync/atomic"
)

// Default buffer sizes for the encoder pool.
const (
	// defaultBufSize is the initial capacity for pooled encoder buffers.
	defaultBufSize = 4096

	// maxBufSize caps the buffer size to avoid retaining oversized buffers.
	maxBufSize = 1 << 20 // 1 MiB
)

// EncoderMetrics tracks encoder pool usage for monitoring.
type EncoderMetrics struct {
	// PoolHits counts how many times a buffer was reused from the pool.
	PoolHits atomic.Int64
	// PoolMisses counts how many times a new buffer was allocated.
	PoolMisses atomic.Int64
	// TotalEncodes counts the total number of encode operations.
	TotalEncodes atomic.Int64
	// TotalBytes counts the total bytes of RLP output produced.
	TotalBytes atomic.Int64
	// Failures counts encodes rejected with an error.
	Failures atomic.Int64
}

// Snapshot returns a point-in-time copy of the encoder metrics.
func (m *EncoderMetrics) Snapshot() EncoderMetricsSnapshot {
	return EncoderMetricsSnapshot{
		PoolHits:     m.PoolHits.Load(),
		PoolMisses:   m.PoolMisses.Load(),
		TotalEncodes: m.TotalEncodes.Load(),
		TotalBytes:   m.TotalBytes.Load(),
		Failures:     m.Failures.Load(),
	}
}

// EncoderMetricsSnapshot is a frozen copy of EncoderMetrics values.
type EncoderMetricsSnapshot struct {
	PoolHits     int64
	PoolMisses   int64
	TotalEncodes int64
	TotalBytes   int64
	Failures     int64
}

// EncoderPool manages a pool of reusable RLP encoding buffers.
// It is safe for concurrent use.
type EncoderPool struct {
	pool    sync.Pool
	enc     *Encoder
	metrics EncoderMetrics
}

// NewEncoderPool creates a new encoder pool with default buffer sizing.
// Values are encoded subject to l.
func NewEncoderPool(l Limits) *EncoderPool {
	ep := &EncoderPool{enc: NewEncoder(l)}
	ep.pool.New = func() interface{} {
		ep.metrics.PoolMisses.Add(1)
		return &encoderBuf{data: make([]byte, 0, defaultBufSize), fresh: true}
	}
	return ep
}

// Metrics returns the pool's usage metrics.
func (ep *EncoderPool) Metrics() *EncoderMetrics {
	return &ep.metrics
}

// encoderBuf is the pooled buffer wrapper.
type encoderBuf struct {
	data  []byte
	fresh bool
}

// get retrieves a buffer from the pool.
func (ep *EncoderPool) get() *encoderBuf {
	buf := ep.pool.Get().(*encoderBuf)
	if buf.fresh {
		buf.fresh = false
	} else {
		ep.metrics.PoolHits.Add(1)
	}
	buf.data = buf.data[:0]
	return buf
}

// put returns a buffer to the pool, discarding oversized buffers.
func (ep *EncoderPool) put(buf *encoderBuf) {
	if cap(buf.data) > maxBufSize {
		// Let GC reclaim oversized buffers.
		return
	}
	ep.pool.Put(buf)
}

// Encode returns the encoding of v. The result is a fresh slice that does not
// alias pooled memory.
func (ep *EncoderPool) Encode(v Value) ([]byte, error) {
	buf := ep.get()
	defer ep.put(buf)

	var err error
	buf.data, err = ep.enc.Append(buf.data, v)
	if err != nil {
		ep.metrics.Failures.Add(1)
		return nil, err
	}
	return ep.finish(buf.data, 1), nil
}

// EncodeBytes encodes a single Go value and returns the RLP bytes.
// This is a pooled equivalent of rlp.EncodeToBytes.
func (ep *EncoderPool) EncodeBytes(val interface{}) ([]byte, error) {
	v, err := ValueOf(val)
	if err != nil {
		ep.metrics.Failures.Add(1)
		return nil, err
	}
	return ep.Encode(v)
}

// EncodeBatch RLP-encodes a list of items into a single RLP list.
// Each item is individually converted and then wrapped in a list header.
// No output is produced if any item is unsupported.
func (ep *EncoderPool) EncodeBatch(items []interface{}) ([]byte, error) {
	values := make([]Value, len(items))
	for i, item := range items {
		v, err := ValueOf(item)
		if err != nil {
			ep.metrics.Failures.Add(1)
			return nil, err
		}
		values[i] = v
	}

	buf := ep.get()
	defer ep.put(buf)

	var err error
	buf.data, err = ep.enc.Append(buf.data, ListOf(values...))
	if err != nil {
		ep.metrics.Failures.Add(1)
		return nil, err
	}
	return ep.finish(buf.data, int64(len(items))), nil
}

// finish copies the result out of the pooled buffer so the buffer can be reused.
func (ep *EncoderPool) finish(data []byte, encodes int64) []byte {
	ep.metrics.TotalEncodes.Add(encodes)
	ep.metrics.TotalBytes.Add(int64(len(data)))
	out := make([]byte, len(data))
	copy(out, data)
	return out
}
