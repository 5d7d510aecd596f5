// Package section defines the on-wire sections of a tile stream: the fixed
// 8-byte header, the u32 tile index, and the constants that bound the
// container.
//
// The layout is little-endian with no padding and is shared with GPU-side
// decompressors, so every field is encoded and decoded explicitly - the
// packed header word by hand-rolled masks and shifts, never by in-memory
// struct layout.
//
// Stream layout:
//
//	offset  size  meaning
//	0       8     Header
//	8       4*N   TileIndex[0..N-1] where N = header.NumTiles
//	              index[0] = compressed size of tile N-1
//	              index[i] = offset of tile i (i >= 1), relative to the
//	                         start of the payload region
//	8+4N    ...   payload: concatenation of tile[0], tile[1], ...
package section
