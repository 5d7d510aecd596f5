// Package gdeflate implements a GPU-oriented DEFLATE container: a
// tile-parallel stream format and its CPU-side compressor and decompressor.
//
// The codec partitions an input into fixed 64 KiB tiles, compresses each
// tile independently, and lays the results out in a self-describing stream
// so that many workers - CPU threads here, GPU warps elsewhere - can
// decompress tiles concurrently with no cross-tile dependencies. The wire
// format (8-byte header, u32 tile index, concatenated payloads) is bit-exact
// and shared with GPU consumers; see the stream and section packages for the
// layout details.
//
// # Basic Usage
//
// Compressing a buffer:
//
//	src := loadAsset()
//	dst := make([]byte, gdeflate.CompressBound(len(src)))
//	n, err := gdeflate.Compress(dst, src, 9, 0)
//	if err != nil {
//	    return err
//	}
//	stream := dst[:n]
//
// Decompressing it back:
//
//	size, err := gdeflate.UncompressedSize(stream)
//	if err != nil {
//	    return err
//	}
//	out := make([]byte, size)
//	_, err = gdeflate.Decompress(out, stream, 8)
//
// Compression is deterministic in (input, level): the same input produces a
// byte-identical stream regardless of worker count or scheduling.
//
// # Package Structure
//
// This package provides thin wrappers around the stream package. For
// fine-grained control (functional options, reusable compressor instances)
// use the stream package directly; the section package exposes the wire
// format primitives and the compress package the underlying page codecs.
package gdeflate

import (
	"fmt"

	"github.com/arloliu/gdeflate/compress"
	"github.com/arloliu/gdeflate/errs"
	"github.com/arloliu/gdeflate/internal/engine"
	"github.com/arloliu/gdeflate/section"
	"github.com/arloliu/gdeflate/stream"
)

// Re-exported limits of the tile stream container.
const (
	// TileSize is the uncompressed size of every tile except possibly the last.
	TileSize = section.TileSize

	// MaxTiles is the maximum tile count of a single stream.
	MaxTiles = section.MaxTiles

	// MinCompressionLevel and MaxCompressionLevel bound the level parameter
	// of Compress.
	MinCompressionLevel = compress.MinLevel
	MaxCompressionLevel = compress.MaxLevel

	// MaxWorkers caps the threads participating in one operation.
	MaxWorkers = engine.MaxWorkers
)

// Flag alters the behavior of Compress. All bits outside the defined flags
// are reserved and must be zero.
type Flag uint32

// CompressSingleThread forces compression to run entirely on the calling
// goroutine.
const CompressSingleThread Flag = 0x200

// CompressBound returns the worst-case compressed size for an input of n
// bytes. Destination buffers sized against it never fail with
// errs.ErrOutputTooSmall.
func CompressBound(n int) int {
	return stream.CompressBound(n)
}

// Compress compresses src into dst as a tile stream and returns the number
// of bytes written.
//
// Parameters:
//   - dst: Destination buffer, sized against CompressBound(len(src))
//   - src: Input bytes; must be non-empty and at most MaxTiles*TileSize
//   - level: Compression level in [MinCompressionLevel, MaxCompressionLevel]
//   - flags: Zero or CompressSingleThread
//
// Returns:
//   - int: Bytes written to dst
//   - error: errs.ErrBadArgument, errs.ErrInputTooLarge,
//     errs.ErrOutputTooSmall or errs.ErrCodecFault
func Compress(dst, src []byte, level int, flags Flag) (int, error) {
	if flags&^CompressSingleThread != 0 {
		return 0, fmt.Errorf("%w: reserved flag bits 0x%x", errs.ErrBadArgument, uint32(flags&^CompressSingleThread))
	}

	var opts []stream.CompressorOption
	if flags&CompressSingleThread != 0 {
		opts = append(opts, stream.WithSingleThread())
	}

	c, err := stream.NewCompressor(level, opts...)
	if err != nil {
		return 0, err
	}

	return c.Compress(dst, src)
}

// Decompress expands the tile stream in src into dst and returns the number
// of bytes written.
//
// workers is the requested parallelism; it is clamped to [1, MaxWorkers],
// and small streams run entirely on the calling goroutine regardless.
//
// Returns:
//   - int: Bytes written, equal to UncompressedSize(src) on success
//   - error: errs.ErrBadArgument, errs.ErrMalformedStream,
//     errs.ErrUnknownCodec, errs.ErrUnsupportedTileSize,
//     errs.ErrOutputTooSmall or errs.ErrCodecFault
func Decompress(dst, src []byte, workers int) (int, error) {
	workers = min(max(workers, 1), MaxWorkers)

	d, err := stream.NewDecompressor(stream.WithWorkers(workers))
	if err != nil {
		return 0, err
	}

	return d.Decompress(dst, src)
}

// UncompressedSize returns the uncompressed byte count recorded in the
// stream's header, without touching the payload. Callers use it to pre-size
// the destination buffer for Decompress.
func UncompressedSize(data []byte) (int, error) {
	header, err := section.ParseHeader(data)
	if err != nil {
		return 0, err
	}

	return header.UncompressedSize(), nil
}
