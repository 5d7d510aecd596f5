package compress

import (
	"fmt"

	"github.com/arloliu/gdeflate/format"
)

// Compressor compresses a complete buffer in one shot.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a buffer previously produced by the matching
// Compressor.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	//
	// Returns an error if the data is corrupted or was produced by an
	// incompatible algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function that creates a Codec for the specified
// compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Deflate, Zstd, S2, or LZ4)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: Invalid compression type error
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionDeflate:
		return NewDeflateCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone:    NewNoOpCompressor(),
	format.CompressionDeflate: NewDeflateCompressor(),
	format.CompressionZstd:    NewZstdCompressor(),
	format.CompressionS2:      NewS2Compressor(),
	format.CompressionLZ4:     NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
