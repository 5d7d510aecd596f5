// Package endian provides byte order utilities for encoding and decoding
// tile streams.
//
// The tile stream wire format is little-endian everywhere, so most callers
// only ever need GetLittleEndianEngine:
//
//	engine := endian.GetLittleEndianEngine()
//	numTiles := engine.Uint16(hdr[2:4])
//
// The native-endianness probe exists for zero-copy fast paths: when the host
// is little-endian, a u32 table in a stream can be reinterpreted in place
// instead of being decoded word by word.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface for convenient byte order
// operations. binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. A little-endian host stores the LSB (0x00) first,
	// a big-endian host stores the MSB (0x01) first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host stores integers little-endian.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine used by the tile
// stream wire format.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
