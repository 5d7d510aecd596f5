package section

import (
	"testing"

	"github.com/arloliu/gdeflate/errs"
	"github.com/stretchr/testify/require"
)

func TestBuildIndex(t *testing.T) {
	t.Run("single tile", func(t *testing.T) {
		offsets, total, err := BuildIndex([]int{100})
		require.NoError(t, err)
		require.Equal(t, []uint32{100}, offsets)
		require.Equal(t, 100, total)
	})

	t.Run("multiple tiles", func(t *testing.T) {
		offsets, total, err := BuildIndex([]int{10, 20, 30, 5})
		require.NoError(t, err)
		// Entry 0 stores the last tile's size; entries 1..3 are prefix sums.
		require.Equal(t, []uint32{5, 10, 30, 60}, offsets)
		require.Equal(t, 65, total)
	})

	t.Run("empty", func(t *testing.T) {
		_, _, err := BuildIndex(nil)
		require.ErrorIs(t, err, errs.ErrBadArgument)
	})

	t.Run("too many tiles", func(t *testing.T) {
		sizes := make([]int, MaxTiles+1)
		_, _, err := BuildIndex(sizes)
		require.ErrorIs(t, err, errs.ErrBadArgument)
	})
}

func TestTileSpan(t *testing.T) {
	offsets, _, err := BuildIndex([]int{10, 20, 30, 5})
	require.NoError(t, err)

	tests := []struct {
		tile   int
		offset uint32
		length uint32
	}{
		{0, 0, 10},
		{1, 10, 20},
		{2, 30, 30},
		{3, 60, 5},
	}
	for _, tt := range tests {
		offset, length := TileSpan(offsets, tt.tile)
		require.Equal(t, tt.offset, offset, "tile %d offset", tt.tile)
		require.Equal(t, tt.length, length, "tile %d length", tt.tile)
	}

	t.Run("single tile stream", func(t *testing.T) {
		single, _, err := BuildIndex([]int{42})
		require.NoError(t, err)
		offset, length := TileSpan(single, 0)
		require.Equal(t, uint32(0), offset)
		require.Equal(t, uint32(42), length)
	})
}

func TestValidateIndex(t *testing.T) {
	offsets, total, err := BuildIndex([]int{10, 20, 30, 5})
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, ValidateIndex(offsets, total))
	})

	t.Run("truncated payload", func(t *testing.T) {
		err := ValidateIndex(offsets, total-1)
		require.ErrorIs(t, err, errs.ErrMalformedStream)
	})

	t.Run("decreasing offsets", func(t *testing.T) {
		bad := []uint32{5, 10, 30, 20}
		err := ValidateIndex(bad, 65)
		require.ErrorIs(t, err, errs.ErrMalformedStream)
	})

	t.Run("empty tile", func(t *testing.T) {
		bad := []uint32{0, 10}
		err := ValidateIndex(bad, 10)
		require.ErrorIs(t, err, errs.ErrMalformedStream)
	})
}

func TestMapIndex(t *testing.T) {
	offsets, _, err := BuildIndex([]int{10, 20, 30, 5})
	require.NoError(t, err)

	wire := AppendIndex(nil, offsets)
	require.Len(t, wire, len(offsets)*IndexEntrySize)

	mapped, err := MapIndex(wire, len(offsets))
	require.NoError(t, err)
	require.Equal(t, offsets, mapped)

	t.Run("truncated", func(t *testing.T) {
		_, err := MapIndex(wire[:len(wire)-1], len(offsets))
		require.ErrorIs(t, err, errs.ErrMalformedStream)
	})

	t.Run("unaligned input decodes correctly", func(t *testing.T) {
		shifted := make([]byte, len(wire)+1)
		copy(shifted[1:], wire)
		mapped, err := MapIndex(shifted[1:], len(offsets))
		require.NoError(t, err)
		require.Equal(t, offsets, mapped)
	})
}

func TestRoundTripIndexWire(t *testing.T) {
	sizes := []int{300, 299, 1, 65535, 7}
	offsets, total, err := BuildIndex(sizes)
	require.NoError(t, err)
	require.NoError(t, ValidateIndex(offsets, total))

	wire := AppendIndex(nil, offsets)
	mapped, err := MapIndex(wire, len(sizes))
	require.NoError(t, err)

	sum := 0
	for i := range sizes {
		_, length := TileSpan(mapped, i)
		require.Equal(t, sizes[i], int(length), "tile %d", i)
		sum += int(length)
	}
	require.Equal(t, total, sum)
}
