package pool

import (
	"io"
	"sync"

	"github.com/arloliu/gdeflate/compress"
)

const (
	// scratchDefaultSize covers PageBound(MaxPageSize) so a fresh buffer
	// never needs to grow inside a worker loop.
	scratchDefaultSize = 68 * 1024

	// pageScratchThreshold caps retained scratch buffers; anything larger
	// was grown by a caller and is discarded instead of pooled.
	pageScratchThreshold = 2 * scratchDefaultSize
)

// ByteBuffer is a reusable byte buffer backed by a growable slice.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// SetLength sets the length of the buffer to n, growing the backing array if
// needed.
func (bb *ByteBuffer) SetLength(n int) {
	if n < 0 {
		panic("SetLength: negative length")
	}
	if n > cap(bb.B) {
		newBuf := make([]byte, n)
		copy(newBuf, bb.B)
		bb.B = newBuf

		return
	}
	bb.B = bb.B[:n]
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally. The pool can be configured with a maximum
// size threshold to avoid retaining overly large buffers.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the
// specified default capacity.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		// Discard overly large buffers to prevent memory bloat
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var pageScratchPool = NewByteBufferPool(scratchDefaultSize, pageScratchThreshold)

// GetPageScratch retrieves a scratch buffer sized for one worst-case
// compressed tile page. Each compression worker holds one for the duration
// of a call and reuses it across every tile it claims.
func GetPageScratch() *ByteBuffer {
	bb := pageScratchPool.Get()
	bb.SetLength(compress.PageBound(compress.MaxPageSize))

	return bb
}

// PutPageScratch returns a scratch buffer to the pool.
func PutPageScratch(bb *ByteBuffer) {
	pageScratchPool.Put(bb)
}
