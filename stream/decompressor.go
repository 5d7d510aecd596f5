package stream

import (
	"fmt"

	"github.com/arloliu/gdeflate/compress"
	"github.com/arloliu/gdeflate/errs"
	"github.com/arloliu/gdeflate/internal/engine"
	"github.com/arloliu/gdeflate/section"
)

// Decompressor expands tile streams into caller-provided buffers.
//
// A Decompressor is stateless between calls and safe for concurrent use.
type Decompressor struct {
	workers int
}

// NewDecompressor creates a decompressor.
//
// By default the requested parallelism is engine.MaxWorkers, scaled down by
// the tile-count heuristic; WithWorkers overrides the requested parallelism.
func NewDecompressor(opts ...DecompressorOption) (*Decompressor, error) {
	d := &Decompressor{workers: engine.MaxWorkers}
	if err := applyDecompressorOptions(d, opts...); err != nil {
		return nil, err
	}

	return d, nil
}

// Decompress expands the tile stream in src into dst and returns the number
// of bytes written, which always equals the stream's recorded uncompressed
// size on success.
//
// The header and index are validated before any tile work starts: a failed
// magic check or truncated index yields errs.ErrMalformedStream, a foreign
// codec identifier errs.ErrUnknownCodec, a reserved tile size code
// errs.ErrUnsupportedTileSize. dst smaller than the recorded uncompressed
// size yields errs.ErrOutputTooSmall.
//
// Tiles are then fanned over the worker pool; each worker owns a page
// decompressor and writes a disjoint slice of dst. A tile that fails to
// decode, or decodes to the wrong length, surfaces as an error naming the
// first failing tile rather than silently corrupt output.
func (d *Decompressor) Decompress(dst, src []byte) (int, error) {
	if len(dst) == 0 || len(src) == 0 {
		return 0, fmt.Errorf("%w: empty buffer", errs.ErrBadArgument)
	}

	header, err := section.ParseHeader(src)
	if err != nil {
		return 0, err
	}

	numTiles := int(header.NumTiles)

	offsets, err := section.MapIndex(src[section.HeaderSize:], numTiles)
	if err != nil {
		return 0, err
	}

	payload := src[section.HeaderSize+header.IndexSize():]
	if err := section.ValidateIndex(offsets, len(payload)); err != nil {
		return 0, err
	}

	size := header.UncompressedSize()
	if len(dst) < size {
		return 0, fmt.Errorf("%w: stream expands to %d bytes, have %d", errs.ErrOutputTooSmall, size, len(dst))
	}

	job := engine.NewJob(numTiles)
	extra := engine.DecompressWorkers(numTiles, d.workers)

	err = engine.Run(job, extra, func(job *engine.Job) error {
		pd := compress.NewPageDecompressor()

		for {
			index, ok := job.Next()
			if !ok {
				return nil
			}

			offset, length := section.TileSpan(offsets, int(index))
			lo := int(offset)
			hi := lo + int(length)

			start := int(index) * section.TileSize
			end := min(start+section.TileSize, size)

			n, err := pd.DecompressPage(dst[start:end], payload[lo:hi])
			if err != nil {
				return fmt.Errorf("%w: tile %d: %w", errs.ErrCodecFault, index, err)
			}
			if n != end-start {
				return fmt.Errorf("%w: tile %d produced %d bytes, want %d", errs.ErrMalformedStream, index, n, end-start)
			}
		}
	})
	if err != nil {
		return 0, err
	}

	return size, nil
}
