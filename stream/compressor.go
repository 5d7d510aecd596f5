package stream

import (
	"fmt"

	"github.com/arloliu/gdeflate/compress"
	"github.com/arloliu/gdeflate/errs"
	"github.com/arloliu/gdeflate/internal/engine"
	"github.com/arloliu/gdeflate/internal/pool"
	"github.com/arloliu/gdeflate/section"
)

// CompressBound returns the worst-case size of the tile stream produced for
// an input of n bytes. Callers size the destination buffer against it; a
// destination of at least CompressBound(len(src)) bytes guarantees Compress
// cannot fail with errs.ErrOutputTooSmall.
//
// The bound is intentionally conservative: one worst-case compressed page
// per tile, plus the header and a trailing alignment allowance.
func CompressBound(n int) int {
	numTiles := min(section.MaxTiles, section.NumTiles(n))
	numTiles = max(1, numTiles)

	return numTiles*compress.PageBound(section.TileSize) + section.HeaderSize + 8
}

// Compressor compresses byte buffers into tile streams at a fixed level.
//
// A Compressor is stateless between calls and safe for concurrent use; the
// per-call worker pool and codec instances are created inside Compress.
type Compressor struct {
	level        int
	singleThread bool
}

// NewCompressor creates a compressor at the given level.
//
// Parameters:
//   - level: Compression level in [compress.MinLevel, compress.MaxLevel]
//   - opts: Optional configuration (see WithSingleThread)
//
// Returns:
//   - *Compressor: The created compressor
//   - error: errs.ErrBadArgument when the level or an option is invalid
func NewCompressor(level int, opts ...CompressorOption) (*Compressor, error) {
	if level < compress.MinLevel || level > compress.MaxLevel {
		return nil, fmt.Errorf("%w: compression level %d out of range [%d, %d]",
			errs.ErrBadArgument, level, compress.MinLevel, compress.MaxLevel)
	}

	c := &Compressor{level: level}
	if err := applyCompressorOptions(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// Compress compresses src into dst as a complete tile stream and returns the
// number of bytes written.
//
// dst must be sized against CompressBound(len(src)). The input is split into
// 64 KiB tiles, each tile is compressed independently by a pool of workers
// claiming tiles through a shared atomic work index, and the stream is then
// serialized in strict tile order. The output depends only on (src, level),
// not on the worker count or scheduling.
//
// Errors: errs.ErrBadArgument for an empty input, errs.ErrInputTooLarge for
// inputs beyond MaxTiles*TileSize, errs.ErrOutputTooSmall for an undersized
// destination, errs.ErrCodecFault when the page codec fails on a tile.
func (c *Compressor) Compress(dst, src []byte) (int, error) {
	if len(src) == 0 {
		return 0, fmt.Errorf("%w: empty input", errs.ErrBadArgument)
	}
	if len(src) > section.MaxInputSize {
		return 0, fmt.Errorf("%w: input size %d exceeds %d", errs.ErrInputTooLarge, len(src), section.MaxInputSize)
	}

	header, err := section.NewHeader(len(src))
	if err != nil {
		return 0, err
	}

	numTiles := int(header.NumTiles)
	tiles := make([][]byte, numTiles)

	job := engine.NewJob(numTiles)
	workers := engine.CompressWorkers(numTiles, c.singleThread)

	err = engine.Run(job, workers, func(job *engine.Job) error {
		pc, err := compress.NewPageCompressor(c.level)
		if err != nil {
			return fmt.Errorf("%w: %w", errs.ErrCodecFault, err)
		}

		scratch := pool.GetPageScratch()
		defer pool.PutPageScratch(scratch)

		for {
			index, ok := job.Next()
			if !ok {
				return nil
			}

			pos := int(index) * section.TileSize
			end := min(pos+section.TileSize, len(src))

			n, err := pc.CompressPage(scratch.Bytes(), src[pos:end])
			if err != nil {
				return fmt.Errorf("%w: tile %d: %w", errs.ErrCodecFault, index, err)
			}

			// Move the payload into the tile's slot; no other worker ever
			// touches this index.
			tile := make([]byte, n)
			copy(tile, scratch.Bytes()[:n])
			tiles[index] = tile
		}
	})
	if err != nil {
		return 0, err
	}

	return c.serialize(dst, header, tiles)
}

// serialize emits the header, index and payloads into dst in wire order and
// returns the total byte count.
func (c *Compressor) serialize(dst []byte, header section.Header, tiles [][]byte) (int, error) {
	sizes, cleanup := pool.GetIntSlice(len(tiles))
	defer cleanup()

	for i, tile := range tiles {
		sizes[i] = len(tile)
	}

	offsets, payloadSize, err := section.BuildIndex(sizes)
	if err != nil {
		return 0, err
	}

	total := section.HeaderSize + header.IndexSize() + payloadSize
	if len(dst) < total {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", errs.ErrOutputTooSmall, total, len(dst))
	}

	copy(dst, header.Bytes())
	section.AppendIndex(dst[:section.HeaderSize], offsets)

	// Entry 0 of the index is the last tile's size, not an offset; tile 0
	// always starts at the beginning of the payload region.
	dataOffset := section.HeaderSize + header.IndexSize()
	for i, tile := range tiles {
		tileOffset := 0
		if i > 0 {
			tileOffset = int(offsets[i])
		}
		copy(dst[dataOffset+tileOffset:], tile)
	}

	return total, nil
}
