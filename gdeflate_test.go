package gdeflate

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/arloliu/gdeflate/errs"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, src []byte, level int, flags Flag) []byte {
	t.Helper()

	dst := make([]byte, CompressBound(len(src)))
	n, err := Compress(dst, src, level, flags)
	require.NoError(t, err)

	out := make([]byte, len(src))
	m, err := Decompress(out, dst[:n], 8)
	require.NoError(t, err)
	require.Equal(t, len(src), m)

	return dst[:n]
}

func TestCompressEmptyInput(t *testing.T) {
	dst := make([]byte, CompressBound(0))
	_, err := Compress(dst, nil, 6, 0)
	require.ErrorIs(t, err, errs.ErrBadArgument)
}

func TestCompressSingleByte(t *testing.T) {
	src := []byte{0x41}
	require.GreaterOrEqual(t, CompressBound(1), 9)

	compressed := roundTrip(t, src, 6, 0)
	require.Equal(t, []byte{0x04, 0xFB, 0x01, 0x00, 0x05}, compressed[:5])

	out := make([]byte, 1)
	_, err := Decompress(out, compressed, 1)
	require.NoError(t, err)
	require.Equal(t, src, out)
}

func TestCompressExactTile(t *testing.T) {
	src := make([]byte, TileSize)
	compressed := roundTrip(t, src, 6, 0)

	// One tile, lastTileSize == 0.
	require.Equal(t, []byte{0x04, 0xFB, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00}, compressed[:8])

	size, err := UncompressedSize(compressed)
	require.NoError(t, err)
	require.Equal(t, TileSize, size)
}

func TestCompressTilePlusOne(t *testing.T) {
	src := make([]byte, TileSize+1)
	compressed := roundTrip(t, src, 6, 0)

	// Two tiles, lastTileSize == 1 packed at bit 2.
	require.Equal(t, []byte{0x04, 0xFB, 0x02, 0x00, 0x05, 0x00, 0x00, 0x00}, compressed[:8])

	size, err := UncompressedSize(compressed)
	require.NoError(t, err)
	require.Equal(t, TileSize+1, size)
}

func TestCompressLevelsAndDeterminism(t *testing.T) {
	src := make([]byte, 4*TileSize)
	rnd := rand.New(rand.NewSource(2024))
	for i := 0; i < len(src); i += 3 {
		src[i] = byte(rnd.Intn(256))
	}

	for _, level := range []int{1, 12} {
		multi := roundTrip(t, src, level, 0)
		single := roundTrip(t, src, level, CompressSingleThread)
		require.Equal(t, multi, single, "level %d", level)
	}
}

func TestCompressFlagValidation(t *testing.T) {
	src := []byte("payload")
	dst := make([]byte, CompressBound(len(src)))

	_, err := Compress(dst, src, 6, 0x01)
	require.ErrorIs(t, err, errs.ErrBadArgument)

	_, err = Compress(dst, src, 6, CompressSingleThread)
	require.NoError(t, err)
}

func TestCompressLevelValidation(t *testing.T) {
	src := []byte("payload")
	dst := make([]byte, CompressBound(len(src)))

	for _, level := range []int{0, -1, 13} {
		_, err := Compress(dst, src, level, 0)
		require.ErrorIs(t, err, errs.ErrBadArgument, "level %d", level)
	}
}

func TestDecompressMalformed(t *testing.T) {
	out := make([]byte, 16)

	t.Run("bad magic", func(t *testing.T) {
		in := []byte{0x04, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00}
		_, err := Decompress(out, in, 1)
		require.ErrorIs(t, err, errs.ErrMalformedStream)
	})

	t.Run("unknown codec", func(t *testing.T) {
		in := []byte{0x05, 0xFA, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00}
		_, err := Decompress(out, in, 1)
		require.ErrorIs(t, err, errs.ErrUnknownCodec)
	})
}

func TestRoundTripSizes(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	sizes := []int{1, 2, 1000, TileSize - 1, TileSize, TileSize + 1, 2 * TileSize, 3*TileSize + 4096}

	for _, size := range sizes {
		src := make([]byte, size)
		rnd.Read(src)

		compressed := roundTrip(t, src, 6, 0)

		out := make([]byte, size)
		n, err := Decompress(out, compressed, 4)
		require.NoError(t, err)
		require.Equal(t, size, n)
		require.True(t, bytes.Equal(src, out), "size %d", size)
	}
}

func TestUncompressedSize(t *testing.T) {
	src := make([]byte, 2*TileSize+17)
	compressed := roundTrip(t, src, 1, 0)

	size, err := UncompressedSize(compressed)
	require.NoError(t, err)
	require.Equal(t, len(src), size)

	_, err = UncompressedSize([]byte{0x01, 0x02})
	require.ErrorIs(t, err, errs.ErrMalformedStream)
}
