package section

// Tile geometry and stream limits.
//
// TileSize is fixed for codec identifier 4; the header names it through the
// two-bit tile size code rather than an explicit byte count.
const (
	// TileSize is the uncompressed size of every tile except possibly the last.
	TileSize = 64 * 1024

	// MaxTiles is the maximum number of tiles a single stream can hold,
	// bounded by the 16-bit tile count in the header.
	MaxTiles = (1 << 16) - 1

	// MaxInputSize is the largest input a single tile stream can address.
	MaxInputSize = TileSize * MaxTiles

	// HeaderSize is the fixed size of the stream header in bytes.
	HeaderSize = 8

	// IndexEntrySize is the size of one tile index entry in bytes.
	IndexEntrySize = 4

	// TileSizeIdx64K is the tile size code for 64 KiB tiles, the only code
	// this codec assigns. All other codes are reserved.
	TileSizeIdx64K = 1
)

// Bit layout of the packed word at header bytes 4-7 (little-endian).
const (
	tileSizeIdxBits  = 2
	lastTileSizeBits = 18

	tileSizeIdxMask  = 1<<tileSizeIdxBits - 1
	lastTileSizeMask = 1<<lastTileSizeBits - 1

	lastTileSizeShift = tileSizeIdxBits
	reservedShift     = tileSizeIdxBits + lastTileSizeBits
)

// NumTiles returns the tile count for an input of the given size, counting
// the final partial tile.
func NumTiles(uncompressedSize int) int {
	return (uncompressedSize + TileSize - 1) / TileSize
}
