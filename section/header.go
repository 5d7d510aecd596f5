package section

import (
	"github.com/arloliu/gdeflate/endian"
	"github.com/arloliu/gdeflate/errs"
	"github.com/arloliu/gdeflate/format"
)

// Header represents the fixed 8-byte header at the start of a tile stream.
//
// Wire layout (little-endian, no padding):
//
//	byte 0   codec identifier
//	byte 1   magic (identifier XOR 0xFF)
//	byte 2-3 number of tiles (uint16)
//	byte 4-7 packed word:
//	           bits  0-1  tile size code (must be TileSizeIdx64K)
//	           bits  2-19 size of the last tile in bytes, 0 when the input
//	                      is an exact multiple of TileSize
//	           bits 20-31 reserved
//
// The packed word is encoded and decoded with explicit masks and shifts;
// the layout is wire-visible and shared with GPU-side decompressors.
type Header struct {
	// ID is the codec identifier. Streams produced by this library always
	// carry format.CodecGDeflate.
	ID format.CodecID
	// NumTiles is the number of tiles in the stream, including the final
	// partial tile.
	NumTiles uint16
	// TileSizeIdx is the two-bit tile size code.
	TileSizeIdx uint8
	// LastTileSize is the byte count of the final tile, zero when the
	// uncompressed size is an exact multiple of TileSize.
	LastTileSize uint32
	// Reserved holds the top 12 bits of the packed word. Decoders retain a
	// non-zero value for forward compatibility; encoders always emit zero.
	Reserved uint16
}

// NewHeader creates the header for an input of the given uncompressed size.
//
// Returns errs.ErrInputTooLarge when the input needs more than MaxTiles
// tiles, and errs.ErrBadArgument for a non-positive size.
func NewHeader(uncompressedSize int) (Header, error) {
	if uncompressedSize <= 0 {
		return Header{}, errs.ErrBadArgument
	}
	if uncompressedSize > MaxInputSize {
		return Header{}, errs.ErrInputTooLarge
	}

	return Header{
		ID:           format.CodecGDeflate,
		NumTiles:     uint16(NumTiles(uncompressedSize)),
		TileSizeIdx:  TileSizeIdx64K,
		LastTileSize: uint32(uncompressedSize % TileSize),
	}, nil
}

// Parse parses and validates the header from a byte slice.
//
// Validation order matches the error taxonomy: the magic complement check
// classifies the bytes as a tile stream at all (errs.ErrMalformedStream),
// the identifier check classifies the codec (errs.ErrUnknownCodec), and the
// tile size code check classifies the geometry (errs.ErrUnsupportedTileSize).
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return errs.ErrMalformedStream
	}

	id := data[0]
	magic := data[1]
	if id != magic^0xFF {
		return errs.ErrMalformedStream
	}
	if format.CodecID(id) != format.CodecGDeflate {
		return errs.ErrUnknownCodec
	}

	engine := endian.GetLittleEndianEngine()
	packed := engine.Uint32(data[4:8])

	h.ID = format.CodecID(id)
	h.NumTiles = engine.Uint16(data[2:4])
	h.TileSizeIdx = uint8(packed & tileSizeIdxMask)
	h.LastTileSize = packed >> lastTileSizeShift & lastTileSizeMask
	h.Reserved = uint16(packed >> reservedShift)

	if h.TileSizeIdx != TileSizeIdx64K {
		return errs.ErrUnsupportedTileSize
	}
	if h.NumTiles == 0 || h.LastTileSize >= TileSize {
		return errs.ErrMalformedStream
	}

	return nil
}

// Bytes serializes the header into a new 8-byte slice.
//
// The reserved bits are always emitted as zero regardless of the Reserved
// field, so a decode-modify-encode cycle normalizes them.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := endian.GetLittleEndianEngine()

	b[0] = byte(h.ID)
	b[1] = byte(h.ID) ^ 0xFF
	engine.PutUint16(b[2:4], h.NumTiles)

	packed := uint32(h.TileSizeIdx) & tileSizeIdxMask
	packed |= (h.LastTileSize & lastTileSizeMask) << lastTileSizeShift
	engine.PutUint32(b[4:8], packed)

	return b
}

// UncompressedSize returns the total uncompressed byte count recorded by the
// header.
func (h *Header) UncompressedSize() int {
	size := int(h.NumTiles) * TileSize
	if h.LastTileSize != 0 {
		size -= TileSize - int(h.LastTileSize)
	}

	return size
}

// IndexSize returns the byte count of the tile index that follows the header.
func (h *Header) IndexSize() int {
	return int(h.NumTiles) * IndexEntrySize
}

// ParseHeader parses a Header from the start of a tile stream.
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if err := h.Parse(data); err != nil {
		return Header{}, err
	}

	return h, nil
}
