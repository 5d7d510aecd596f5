// Package compress provides the compression codecs used by the gdeflate
// tile-stream codec.
//
// The package has two layers:
//
// # Page codecs
//
// PageCompressor and PageDecompressor are the single-tile DEFLATE primitive
// behind the tile stream. A page is one unit handed to the primitive - here,
// always exactly one page per tile, at most 64 KiB of uncompressed data.
// Instances hold reusable encoder/decoder state and are NOT safe for
// concurrent use; every worker in a compress or decompress call constructs
// its own instance and keeps it for the lifetime of the call.
//
//	pc, _ := compress.NewPageCompressor(9)
//	n, _ := pc.CompressPage(scratch, tileData)
//
// The worst-case compressed size of a page is PageBound(len(src)); sizing
// the destination against it guarantees CompressPage cannot fail with a
// short buffer.
//
// # Whole-buffer codecs
//
// The Compressor/Decompressor/Codec interfaces cover single-shot
// compression of a complete buffer:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// Implementations exist for Deflate, LZ4, S2, Zstandard and a pass-through
// NoOp codec. They are used as non-tiled baselines when sizing the tile
// stream against conventional formats (see the -compare flag of the
// gdeflate command) and are safe for concurrent use.
//
// Algorithm characteristics at a glance:
//   - None: no compression (fastest, largest)
//   - LZ4: very fast decompression, moderate ratio
//   - S2: balanced speed and ratio
//   - Deflate: the tile primitive's algorithm, applied without tiling
//   - Zstd: best ratio, moderate speed
//
// The Zstandard codec has two backends: the pure-Go klauspost encoder by
// default, and valyala/gozstd behind the "gozstd" build tag for callers
// that accept cgo.
package compress
