package format

type (
	// CodecID identifies the tile codec recorded in a tile stream header.
	CodecID uint8

	// CompressionType selects one of the whole-buffer baseline codecs.
	CompressionType uint8
)

const (
	// CodecGDeflate is the codec identifier this library produces. A stream
	// header carries the identifier in byte 0 and its complement in byte 1.
	CodecGDeflate CodecID = 4

	CompressionNone    CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd    CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2      CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4     CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
	CompressionDeflate CompressionType = 0x5 // CompressionDeflate represents single-page DEFLATE compression.
)

func (c CodecID) String() string {
	switch c {
	case CodecGDeflate:
		return "GDeflate"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionDeflate:
		return "Deflate"
	default:
		return "Unknown"
	}
}
