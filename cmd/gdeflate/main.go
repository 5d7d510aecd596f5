// Command gdeflate compresses files into .gdef archives and expands them
// back, using the tile-parallel codec on the CPU.
//
// Usage:
//
//	gdeflate -compress [-level N] [-compare] -o out.gdef input.bin
//	gdeflate -decompress [-workers N] -o restored.bin input.gdef
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/arloliu/gdeflate/compress"
	"github.com/arloliu/gdeflate/format"
	"github.com/arloliu/gdeflate/internal/archive"
)

type options struct {
	compressMode   bool
	decompressMode bool
	level          int
	workers        int
	compare        bool
	output         string
}

func main() {
	lg, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = lg.Sync() }()

	if err := run(lg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(2)
	}
}

func run(lg *zap.Logger) error {
	var opt options
	flag.BoolVar(&opt.compressMode, "compress", false, "compress the input file")
	flag.BoolVar(&opt.decompressMode, "decompress", false, "decompress the input archive")
	flag.IntVar(&opt.level, "level", 9, "compression level (1-12)")
	flag.IntVar(&opt.workers, "workers", runtime.NumCPU(), "decompression worker count")
	flag.BoolVar(&opt.compare, "compare", false, "also run whole-buffer baseline codecs and log their sizes")
	flag.StringVar(&opt.output, "o", "", "output file path")
	flag.Parse()

	if opt.compressMode == opt.decompressMode {
		flag.Usage()
		return fmt.Errorf("exactly one of -compress or -decompress is required")
	}
	if flag.NArg() != 1 {
		flag.Usage()
		return fmt.Errorf("exactly one input file is required")
	}

	input := flag.Arg(0)
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	if opt.compressMode {
		return runCompress(lg, opt, input, data)
	}

	return runDecompress(lg, opt, input, data)
}

func runCompress(lg *zap.Logger, opt options, input string, data []byte) error {
	output := opt.output
	if output == "" {
		output = input + ".gdef"
	}

	start := time.Now()
	packed, err := archive.Pack(data, opt.level)
	if err != nil {
		return fmt.Errorf("compress %s: %w", input, err)
	}

	lg.Info("compressed",
		zap.String("input", input),
		zap.String("output", output),
		zap.Int("level", opt.level),
		zap.Int("uncompressed_size", len(data)),
		zap.Int("archive_size", len(packed)),
		zap.Float64("ratio", float64(len(packed))/float64(len(data))),
		zap.Duration("elapsed", time.Since(start)),
	)

	if opt.compare {
		runComparison(lg, data)
	}

	return os.WriteFile(output, packed, 0o644)
}

func runDecompress(lg *zap.Logger, opt options, input string, data []byte) error {
	output := opt.output
	if output == "" {
		output = input + ".out"
	}

	start := time.Now()
	restored, err := archive.Unpack(data, opt.workers)
	if err != nil {
		return fmt.Errorf("decompress %s: %w", input, err)
	}

	lg.Info("decompressed",
		zap.String("input", input),
		zap.String("output", output),
		zap.Int("workers", opt.workers),
		zap.Int("restored_size", len(restored)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return os.WriteFile(output, restored, 0o644)
}

// runComparison sizes the input against the non-tiled baseline codecs. The
// tile stream trades some ratio for parallel decompression; the comparison
// makes that trade visible.
func runComparison(lg *zap.Logger, data []byte) {
	baselines := []format.CompressionType{
		format.CompressionNone,
		format.CompressionLZ4,
		format.CompressionS2,
		format.CompressionDeflate,
		format.CompressionZstd,
	}

	for _, ct := range baselines {
		codec, err := compress.GetCodec(ct)
		if err != nil {
			lg.Warn("baseline codec unavailable", zap.String("codec", ct.String()), zap.Error(err))
			continue
		}

		start := time.Now()
		out, err := codec.Compress(data)
		if err != nil {
			lg.Warn("baseline compression failed", zap.String("codec", ct.String()), zap.Error(err))
			continue
		}

		lg.Info("baseline",
			zap.String("codec", ct.String()),
			zap.Int("size", len(out)),
			zap.Float64("ratio", float64(len(out))/float64(len(data))),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}
