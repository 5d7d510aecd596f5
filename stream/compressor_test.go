package stream

import (
	"math/rand"
	"testing"

	"github.com/arloliu/gdeflate/compress"
	"github.com/arloliu/gdeflate/errs"
	"github.com/arloliu/gdeflate/section"
	"github.com/stretchr/testify/require"
)

func randomPayload(t *testing.T, size int, seed int64) []byte {
	t.Helper()

	data := make([]byte, size)
	rnd := rand.New(rand.NewSource(seed))
	for i := 0; i < len(data); i += 2 {
		// Alternate random and runs so the payload is partially compressible.
		data[i] = byte(rnd.Intn(256))
	}

	return data
}

func compressRoundTrip(t *testing.T, src []byte, level int, opts ...CompressorOption) []byte {
	t.Helper()

	c, err := NewCompressor(level, opts...)
	require.NoError(t, err)

	dst := make([]byte, CompressBound(len(src)))
	n, err := c.Compress(dst, src)
	require.NoError(t, err)
	require.LessOrEqual(t, n, len(dst))

	return dst[:n]
}

func TestCompressBound(t *testing.T) {
	// Zero-byte inputs still get a one-tile allowance.
	require.Positive(t, CompressBound(0))
	require.GreaterOrEqual(t, CompressBound(1), 9)

	one := CompressBound(section.TileSize)
	two := CompressBound(section.TileSize + 1)
	require.Greater(t, two, one)

	// The bound is monotonic in the tile count and covers the worst case of
	// one stored page per tile.
	require.GreaterOrEqual(t, one, section.TileSize+section.HeaderSize+section.IndexEntrySize)
}

func TestNewCompressor(t *testing.T) {
	for level := compress.MinLevel; level <= compress.MaxLevel; level++ {
		_, err := NewCompressor(level)
		require.NoError(t, err, "level %d", level)
	}

	_, err := NewCompressor(0)
	require.ErrorIs(t, err, errs.ErrBadArgument)
	_, err = NewCompressor(13)
	require.ErrorIs(t, err, errs.ErrBadArgument)
}

func TestCompressValidation(t *testing.T) {
	c, err := NewCompressor(6)
	require.NoError(t, err)

	t.Run("empty input", func(t *testing.T) {
		_, err := c.Compress(make([]byte, 64), nil)
		require.ErrorIs(t, err, errs.ErrBadArgument)
	})

	t.Run("output too small", func(t *testing.T) {
		src := randomPayload(t, 4*section.TileSize, 7)
		_, err := c.Compress(make([]byte, 16), src)
		require.ErrorIs(t, err, errs.ErrOutputTooSmall)
	})
}

func TestCompressHeaderBytes(t *testing.T) {
	t.Run("single byte", func(t *testing.T) {
		out := compressRoundTrip(t, []byte{0x41}, 6)
		require.GreaterOrEqual(t, len(out), 9)
		// id=4, magic=0xFB, numTiles=1, tileSizeIdx=1, lastTileSize=1
		require.Equal(t, []byte{0x04, 0xFB, 0x01, 0x00, 0x05, 0x00, 0x00, 0x00}, out[:8])
	})

	t.Run("one full tile of zeros", func(t *testing.T) {
		src := make([]byte, section.TileSize)
		out := compressRoundTrip(t, src, 6)
		require.Equal(t, []byte{0x04, 0xFB, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00}, out[:8])

		// The single index entry holds the compressed size of tile 0, and
		// the payload follows immediately after it.
		offsets, err := section.MapIndex(out[section.HeaderSize:], 1)
		require.NoError(t, err)
		require.Equal(t, len(out)-section.HeaderSize-section.IndexEntrySize, int(offsets[0]))
	})

	t.Run("two tiles", func(t *testing.T) {
		src := make([]byte, section.TileSize+1)
		out := compressRoundTrip(t, src, 6)
		require.Equal(t, []byte{0x04, 0xFB, 0x02, 0x00, 0x05, 0x00, 0x00, 0x00}, out[:8])

		offsets, err := section.MapIndex(out[section.HeaderSize:], 2)
		require.NoError(t, err)
		payloadSize := len(out) - section.HeaderSize - 2*section.IndexEntrySize
		// index[1] is tile 1's offset, index[0] its size; together they
		// account for the full payload.
		require.Equal(t, payloadSize, int(offsets[1])+int(offsets[0]))
	})
}

func TestCompressDeterministic(t *testing.T) {
	src := randomPayload(t, 4*section.TileSize+12345, 99)

	for _, level := range []int{1, 12} {
		multi := compressRoundTrip(t, src, level)
		single := compressRoundTrip(t, src, level, WithSingleThread())
		require.Equal(t, multi, single, "level %d: threaded and single-threaded outputs differ", level)

		again := compressRoundTrip(t, src, level)
		require.Equal(t, multi, again, "level %d: repeated compression differs", level)
	}
}

func TestCompressBoundHolds(t *testing.T) {
	sizes := []int{1, section.TileSize - 1, section.TileSize, section.TileSize + 1, 3 * section.TileSize}
	for _, size := range sizes {
		src := randomPayload(t, size, int64(size))
		out := compressRoundTrip(t, src, 1)
		require.LessOrEqual(t, len(out), CompressBound(size), "size %d", size)
	}
}
