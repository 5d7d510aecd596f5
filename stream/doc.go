// Package stream implements compression and decompression of tile streams.
//
// A tile stream is the complete on-disk artifact: an 8-byte header, a u32
// tile index, and the concatenation of independently compressed 64 KiB
// tiles. Because tiles share no state, many workers decompress them
// concurrently with no cross-tile dependencies; the same layout is consumed
// by GPU decompressors, so the wire format produced here is bit-exact and
// fixed.
//
// Compression fans tiles out over a bounded worker pool, each worker owning
// its own page codec and scratch buffer, then serializes the header, index
// and payloads in strict tile order. Decompression validates the header and
// index, then fans tiles out again, each worker writing a disjoint slice of
// the output buffer.
//
//	bound := stream.CompressBound(len(data))
//	dst := make([]byte, bound)
//	c, _ := stream.NewCompressor(9)
//	n, err := c.Compress(dst, data)
//
//	out := make([]byte, originalSize)
//	d, _ := stream.NewDecompressor(stream.WithWorkers(8))
//	m, err := d.Decompress(out, dst[:n])
package stream
