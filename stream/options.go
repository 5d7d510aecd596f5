package stream

import (
	"fmt"

	"github.com/arloliu/gdeflate/errs"
	"github.com/arloliu/gdeflate/internal/options"
)

// CompressorOption configures a Compressor.
type CompressorOption = options.Option[*Compressor]

// DecompressorOption configures a Decompressor.
type DecompressorOption = options.Option[*Decompressor]

// WithSingleThread forces compression to run entirely on the calling
// goroutine; no workers are spawned.
func WithSingleThread() CompressorOption {
	return options.NoError(func(c *Compressor) {
		c.singleThread = true
	})
}

// WithWorkers sets the requested decompression parallelism. The effective
// worker count is capped at engine.MaxWorkers and scaled down for small
// streams.
func WithWorkers(n int) DecompressorOption {
	return options.New(func(d *Decompressor) error {
		if n < 1 {
			return fmt.Errorf("%w: worker count %d must be positive", errs.ErrBadArgument, n)
		}
		d.workers = n

		return nil
	})
}

func applyCompressorOptions(c *Compressor, opts ...CompressorOption) error {
	return options.Apply(c, opts...)
}

func applyDecompressorOptions(d *Decompressor, opts ...DecompressorOption) error {
	return options.Apply(d, opts...)
}
