package compress

// ZstdCompressor provides Zstandard compression, the strongest-ratio
// baseline codec.
//
// Two backends exist behind the same type:
//   - default builds use the pure-Go klauspost/compress/zstd encoder
//   - builds with the "gozstd" tag use the cgo bindings to libzstd
//
// Both produce standard Zstandard frames and interoperate freely.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
