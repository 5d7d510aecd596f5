// Package errs defines the sentinel errors shared across the gdeflate packages.
//
// All validation and decode failures surface as one of these sentinels,
// optionally wrapped with call-site context via fmt.Errorf("...: %w", err).
// Callers classify failures with errors.Is:
//
//	n, err := gdeflate.Decompress(dst, stream, 8)
//	if errors.Is(err, errs.ErrUnknownCodec) {
//	    // stream was produced by a different codec
//	}
package errs

import "errors"

var (
	// ErrBadArgument indicates a nil or empty buffer where one is required,
	// or a parameter outside its documented domain.
	ErrBadArgument = errors.New("invalid argument")

	// ErrInputTooLarge indicates the input exceeds the maximum addressable
	// size of a single tile stream (MaxTiles * TileSize bytes).
	ErrInputTooLarge = errors.New("input exceeds maximum tile stream size")

	// ErrOutputTooSmall indicates the caller-supplied output buffer cannot
	// hold the produced data. On compression the buffer was not sized
	// against CompressBound; on decompression it is smaller than the
	// stream's recorded uncompressed size.
	ErrOutputTooSmall = errors.New("output buffer too small")

	// ErrMalformedStream indicates a header that fails the magic check or
	// records an impossible tile geometry, or an index/payload that is
	// truncated or inconsistent. A reserved tile-size code is reported as
	// ErrUnsupportedTileSize instead.
	ErrMalformedStream = errors.New("malformed tile stream")

	// ErrUnknownCodec indicates a structurally valid header whose codec
	// identifier is not GDeflate.
	ErrUnknownCodec = errors.New("unknown codec identifier")

	// ErrUnsupportedTileSize indicates a header whose tile size code names
	// a tile size other than the supported 64 KiB.
	ErrUnsupportedTileSize = errors.New("unsupported tile size")

	// ErrCodecFault indicates the underlying DEFLATE primitive failed on a
	// single tile. The wrapping error records the tile index.
	ErrCodecFault = errors.New("tile codec fault")
)
