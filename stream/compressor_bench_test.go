package stream

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/arloliu/gdeflate/section"
)

func benchPayload(size int) []byte {
	rnd := rand.New(rand.NewSource(9))
	data := make([]byte, size)
	for i := 0; i < len(data); i += 3 {
		data[i] = byte(rnd.Intn(256))
	}

	return data
}

func BenchmarkCompress(b *testing.B) {
	sizes := []int{section.TileSize, 16 * section.TileSize, 64 * section.TileSize}

	for _, size := range sizes {
		src := benchPayload(size)
		dst := make([]byte, CompressBound(size))

		for _, single := range []bool{false, true} {
			var opts []CompressorOption
			name := fmt.Sprintf("%dtiles/parallel", size/section.TileSize)
			if single {
				opts = append(opts, WithSingleThread())
				name = fmt.Sprintf("%dtiles/single", size/section.TileSize)
			}

			c, err := NewCompressor(6, opts...)
			if err != nil {
				b.Fatal(err)
			}

			b.Run(name, func(b *testing.B) {
				b.SetBytes(int64(size))
				b.ResetTimer()

				for b.Loop() {
					if _, err := c.Compress(dst, src); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkDecompress(b *testing.B) {
	src := benchPayload(64 * section.TileSize)

	c, err := NewCompressor(6)
	if err != nil {
		b.Fatal(err)
	}
	buf := make([]byte, CompressBound(len(src)))
	n, err := c.Compress(buf, src)
	if err != nil {
		b.Fatal(err)
	}
	compressed := buf[:n]

	out := make([]byte, len(src))

	for _, workers := range []int{1, 4, 16} {
		d, err := NewDecompressor(WithWorkers(workers))
		if err != nil {
			b.Fatal(err)
		}

		b.Run(fmt.Sprintf("workers%d", workers), func(b *testing.B) {
			b.SetBytes(int64(len(src)))
			b.ResetTimer()

			for b.Loop() {
				if _, err := d.Decompress(out, compressed); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
