package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()
	require.Equal(t, binary.LittleEndian, engine)

	buf := make([]byte, 4)
	engine.PutUint32(buf, 0x04030201)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, buf)
	require.Equal(t, uint32(0x04030201), engine.Uint32(buf))
}

func TestGetBigEndianEngine(t *testing.T) {
	engine := GetBigEndianEngine()
	require.Equal(t, binary.BigEndian, engine)

	buf := make([]byte, 2)
	engine.PutUint16(buf, 0x0102)
	require.Equal(t, []byte{0x01, 0x02}, buf)
}

func TestCheckEndianness(t *testing.T) {
	order := CheckEndianness()
	require.True(t, order == binary.LittleEndian || order == binary.BigEndian)
	require.Equal(t, order == binary.LittleEndian, IsNativeLittleEndian())
}

func TestAppendOperations(t *testing.T) {
	engine := GetLittleEndianEngine()

	buf := engine.AppendUint16(nil, 0x0201)
	buf = engine.AppendUint32(buf, 0x06050403)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}, buf)
}
