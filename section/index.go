package section

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/arloliu/gdeflate/endian"
	"github.com/arloliu/gdeflate/errs"
)

// The tile index is the array of uint32 words immediately following the
// header. Entry i (i >= 1) is the offset of tile i's compressed bytes,
// relative to the start of the payload region. Entry 0 is overloaded: it
// stores the compressed size of the LAST tile. The offset of tile 0 is
// always zero, so no information is lost; the overload saves one index word
// per stream and must be respected exactly or the last tile cannot be
// located.

// BuildIndex computes the tile index from the per-tile compressed sizes.
//
// Entries 1..n-1 hold the prefix sums of sizes[0..n-2]; entry 0 holds the
// size of the last tile. The returned total is the payload byte count, the
// sum of all sizes.
//
// Returns errs.ErrInputTooLarge when an offset or the last tile size does
// not fit in an index word, which can happen only for near-maximum inputs
// of incompressible data.
func BuildIndex(sizes []int) ([]uint32, int, error) {
	if len(sizes) == 0 || len(sizes) > MaxTiles {
		return nil, 0, errs.ErrBadArgument
	}

	offsets := make([]uint32, len(sizes))

	total := 0
	for i, size := range sizes {
		if i > 0 {
			if uint64(total) > math.MaxUint32 {
				return nil, 0, fmt.Errorf("%w: tile %d offset overflows index word", errs.ErrInputTooLarge, i)
			}
			offsets[i] = uint32(total)
		}
		total += size
	}

	last := sizes[len(sizes)-1]
	if uint64(last) > math.MaxUint32 {
		return nil, 0, fmt.Errorf("%w: last tile size overflows index word", errs.ErrInputTooLarge)
	}
	offsets[0] = uint32(last)

	return offsets, total, nil
}

// TileSpan returns the offset and length of tile i's compressed bytes within
// the payload region.
//
// The offset of tile 0 is taken to be zero; the length of the last tile
// comes from the overloaded entry 0.
func TileSpan(offsets []uint32, i int) (offset, length uint32) {
	last := len(offsets) - 1

	if i > 0 {
		offset = offsets[i]
	}
	if i == last {
		length = offsets[0]
	} else {
		length = offsets[i+1] - offset
	}

	return offset, length
}

// ValidateIndex checks the decoder-side index invariants: offsets are
// monotonically non-decreasing for i >= 1, every derived tile length is
// positive, and every tile span lies within the payload region.
func ValidateIndex(offsets []uint32, payloadSize int) error {
	for i := 2; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			return fmt.Errorf("%w: tile %d offset decreases", errs.ErrMalformedStream, i)
		}
	}

	for i := range offsets {
		offset, length := TileSpan(offsets, i)
		if length == 0 {
			return fmt.Errorf("%w: tile %d has empty payload", errs.ErrMalformedStream, i)
		}
		if uint64(offset)+uint64(length) > uint64(payloadSize) {
			return fmt.Errorf("%w: tile %d extends past payload end", errs.ErrMalformedStream, i)
		}
	}

	return nil
}

// MapIndex interprets the index bytes of a stream as a slice of uint32
// entries.
//
// On a little-endian host with 4-byte aligned input the bytes are
// reinterpreted in place with no copy; otherwise the entries are decoded
// into a fresh slice. Callers must treat the result as read-only and must
// not retain it past the lifetime of data.
func MapIndex(data []byte, numTiles int) ([]uint32, error) {
	need := numTiles * IndexEntrySize
	if numTiles <= 0 || len(data) < need {
		return nil, fmt.Errorf("%w: truncated tile index", errs.ErrMalformedStream)
	}

	if endian.IsNativeLittleEndian() && uintptr(unsafe.Pointer(&data[0]))%unsafe.Alignof(uint32(0)) == 0 {
		return unsafe.Slice((*uint32)(unsafe.Pointer(&data[0])), numTiles), nil
	}

	engine := endian.GetLittleEndianEngine()
	offsets := make([]uint32, numTiles)
	for i := range offsets {
		offsets[i] = engine.Uint32(data[i*IndexEntrySize:])
	}

	return offsets, nil
}

// AppendIndex appends the index entries to buf in wire order and returns the
// extended slice.
func AppendIndex(buf []byte, offsets []uint32) []byte {
	engine := endian.GetLittleEndianEngine()
	for _, offset := range offsets {
		buf = engine.AppendUint32(buf, offset)
	}

	return buf
}
