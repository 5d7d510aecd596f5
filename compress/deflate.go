package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/flate"
)

// Compression levels accepted by the page codec. The upper levels map onto
// the flate encoder's strongest setting, preserving the caller-facing
// [1, 12] domain.
const (
	MinLevel = 1
	MaxLevel = 12

	maxFlateLevel = 9
)

// MaxPageSize is the largest uncompressed page a page codec accepts.
const MaxPageSize = 64 * 1024

// pageOverhead is the worst-case per-page expansion above the uncompressed
// size. The flate encoder falls back to stored blocks for incompressible
// input, which costs 5 bytes per 64 KiB block plus the stream terminator;
// this bound leaves generous headroom on top of that.
const pageOverhead = 4 + 4*208 + 4*8

var errPageOverflow = errors.New("compressed page exceeds destination capacity")

// PageBound returns the worst-case compressed size of a page of n
// uncompressed bytes. A destination sized against PageBound cannot overflow
// in CompressPage.
func PageBound(n int) int {
	return n + pageOverhead
}

// cappedWriter writes into a fixed destination slice and fails instead of
// growing it.
type cappedWriter struct {
	buf []byte
	n   int
}

func (w *cappedWriter) Write(p []byte) (int, error) {
	if w.n+len(p) > len(w.buf) {
		return 0, errPageOverflow
	}

	copy(w.buf[w.n:], p)
	w.n += len(p)

	return len(p), nil
}

// PageCompressor compresses single pages with DEFLATE at a fixed level.
//
// A PageCompressor holds reusable encoder state and is NOT safe for
// concurrent use. Each worker participating in a tile-stream compression
// owns one instance for the duration of the call.
type PageCompressor struct {
	fw  *flate.Writer
	dst cappedWriter
}

// NewPageCompressor creates a page compressor at the given level.
//
// Parameters:
//   - level: Compression level in [MinLevel, MaxLevel]; levels above 9 use
//     the flate encoder's strongest setting
//
// Returns:
//   - *PageCompressor: New compressor instance
//   - error: Level out of range, or encoder construction failure
func NewPageCompressor(level int) (*PageCompressor, error) {
	if level < MinLevel || level > MaxLevel {
		return nil, fmt.Errorf("compression level %d out of range [%d, %d]", level, MinLevel, MaxLevel)
	}

	flateLevel := level
	if flateLevel > maxFlateLevel {
		flateLevel = maxFlateLevel
	}

	fw, err := flate.NewWriter(nil, flateLevel)
	if err != nil {
		return nil, fmt.Errorf("allocate page compressor: %w", err)
	}

	return &PageCompressor{fw: fw}, nil
}

// CompressPage compresses src into dst and returns the produced byte count.
//
// src must not exceed MaxPageSize. dst must be sized against
// PageBound(len(src)); a smaller destination fails with an overflow error
// rather than truncating.
func (c *PageCompressor) CompressPage(dst, src []byte) (int, error) {
	if len(src) == 0 || len(src) > MaxPageSize {
		return 0, fmt.Errorf("page size %d out of range (0, %d]", len(src), MaxPageSize)
	}

	c.dst = cappedWriter{buf: dst}
	c.fw.Reset(&c.dst)

	if _, err := c.fw.Write(src); err != nil {
		return 0, err
	}
	if err := c.fw.Close(); err != nil {
		return 0, err
	}

	return c.dst.n, nil
}

// PageDecompressor decompresses single DEFLATE pages into fixed-capacity
// destinations.
//
// Like PageCompressor, instances hold reusable decoder state and are NOT
// safe for concurrent use.
type PageDecompressor struct {
	br bytes.Reader
	fr io.ReadCloser
}

// NewPageDecompressor creates a page decompressor.
func NewPageDecompressor() *PageDecompressor {
	return &PageDecompressor{}
}

// DecompressPage decompresses src into dst and returns the produced byte
// count, at most len(dst).
//
// A page that would expand beyond len(dst) is an error: pages are produced
// from bounded tiles, so overflow always indicates corruption.
func (d *PageDecompressor) DecompressPage(dst, src []byte) (int, error) {
	if len(src) == 0 {
		return 0, errors.New("empty compressed page")
	}

	d.br.Reset(src)
	if d.fr == nil {
		d.fr = flate.NewReader(&d.br)
	} else if err := d.fr.(flate.Resetter).Reset(&d.br, nil); err != nil {
		return 0, err
	}

	n := 0
	for n < len(dst) {
		m, err := d.fr.Read(dst[n:])
		n += m
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
	}

	// Destination is full; any surplus data means the page does not belong
	// to a tile of this capacity.
	var tail [1]byte
	if m, err := d.fr.Read(tail[:]); m > 0 {
		return n, errPageOverflow
	} else if err != nil && !errors.Is(err, io.EOF) {
		return n, err
	}

	return n, nil
}

// deflateWriterPool pools whole-buffer flate writers at the default level.
var deflateWriterPool = sync.Pool{
	New: func() any {
		fw, err := flate.NewWriter(nil, flate.DefaultCompression)
		if err != nil {
			panic(fmt.Sprintf("failed to create flate writer for pool: %v", err))
		}
		return fw
	},
}

// DeflateCompressor provides whole-buffer DEFLATE compression.
//
// This is the non-tiled baseline for the tile stream's own algorithm: the
// same bitstream family, applied to the complete input in one page.
type DeflateCompressor struct{}

var _ Codec = (*DeflateCompressor)(nil)

// NewDeflateCompressor creates a new whole-buffer DEFLATE codec.
func NewDeflateCompressor() DeflateCompressor {
	return DeflateCompressor{}
}

// Compress compresses the input data as a single DEFLATE stream.
func (c DeflateCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	fw, _ := deflateWriterPool.Get().(*flate.Writer)
	defer deflateWriterPool.Put(fw)

	var buf bytes.Buffer
	buf.Grow(len(data) / 2)
	fw.Reset(&buf)

	if _, err := fw.Write(data); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress decompresses a single DEFLATE stream.
func (c DeflateCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	fr := flate.NewReader(bytes.NewReader(data))
	defer fr.Close()

	out, err := io.ReadAll(fr)
	if err != nil {
		return nil, fmt.Errorf("deflate decompression failed: %w", err)
	}

	return out, nil
}
