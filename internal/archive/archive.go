// Package archive implements the .gdef file wrapper used by the gdeflate
// command.
//
// The wrapper is a tool-level convenience, not part of the tile stream wire
// format: it records the magic tag, the uncompressed size and an xxHash64
// content digest ahead of the embedded tile stream, so expansion can size
// its buffer and verify the restored bytes end to end.
//
// Layout (little-endian):
//
//	offset  size  meaning
//	0       8     magic "GDEFLATE"
//	8       8     uncompressed size (uint64)
//	16      8     xxHash64 of the uncompressed content
//	24      ...   tile stream
package archive

import (
	"fmt"

	"github.com/arloliu/gdeflate"
	"github.com/arloliu/gdeflate/endian"
	"github.com/arloliu/gdeflate/errs"
	"github.com/arloliu/gdeflate/internal/hash"
)

// Magic identifies a .gdef archive.
const Magic = "GDEFLATE"

// HeaderSize is the size of the archive header preceding the tile stream.
const HeaderSize = 24

// Pack compresses src at the given level and wraps it in an archive.
func Pack(src []byte, level int) ([]byte, error) {
	bound := gdeflate.CompressBound(len(src))
	out := make([]byte, HeaderSize+bound)

	n, err := gdeflate.Compress(out[HeaderSize:], src, level, 0)
	if err != nil {
		return nil, fmt.Errorf("compress archive content: %w", err)
	}

	engine := endian.GetLittleEndianEngine()
	copy(out[:8], Magic)
	engine.PutUint64(out[8:16], uint64(len(src)))
	engine.PutUint64(out[16:24], hash.Digest(src))

	return out[:HeaderSize+n], nil
}

// Unpack expands an archive produced by Pack and verifies the content
// digest.
func Unpack(data []byte, workers int) ([]byte, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: archive shorter than header", errs.ErrMalformedStream)
	}
	if string(data[:8]) != Magic {
		return nil, fmt.Errorf("%w: bad archive magic", errs.ErrMalformedStream)
	}

	engine := endian.GetLittleEndianEngine()
	size := engine.Uint64(data[8:16])
	digest := engine.Uint64(data[16:24])

	recorded, err := gdeflate.UncompressedSize(data[HeaderSize:])
	if err != nil {
		return nil, err
	}
	if uint64(recorded) != size {
		return nil, fmt.Errorf("%w: archive size %d disagrees with stream size %d", errs.ErrMalformedStream, size, recorded)
	}

	out := make([]byte, size)
	if _, err := gdeflate.Decompress(out, data[HeaderSize:], workers); err != nil {
		return nil, err
	}

	if hash.Digest(out) != digest {
		return nil, fmt.Errorf("%w: content digest mismatch", errs.ErrMalformedStream)
	}

	return out, nil
}
