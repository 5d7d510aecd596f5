package compress

// NoOpCompressor provides a pass-through codec that bypasses compression.
//
// It serves as the zero-cost baseline in codec comparisons and as a stand-in
// where the data is known to be incompressible.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor that bypasses data.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input data as-is without copying.
//
// The returned slice shares the same underlying memory as the input; callers
// must not modify the input while using the result.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input data as-is without copying.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
