// Package engine implements the parallel tile dispatcher shared by the
// compression and decompression paths.
//
// A Job is the complete shared state of one operation: an atomic work index
// and the tile count. Workers claim tile indices with Job.Next until the
// range is exhausted; every index is handed out exactly once. The atomic
// counter is the only cross-worker synchronisation on the hot path - each
// tile reads and writes disjoint data, and the final join publishes all
// per-tile stores to the caller.
package engine

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

const (
	// MaxWorkers caps the worker threads participating in one operation.
	MaxWorkers = 31

	// MinTilesPerWorker is the scaling heuristic: no more workers are
	// spawned than ceil(numTiles / MinTilesPerWorker).
	MinTilesPerWorker = 64
)

// Job carries the shared work state of a single compress or decompress call.
// It is created when the call starts, never shared across operations, and
// discarded when the call returns.
type Job struct {
	next     atomic.Uint32
	numTiles uint32
}

// NewJob creates a job over numTiles tiles with the work index at zero.
func NewJob(numTiles int) *Job {
	return &Job{numTiles: uint32(numTiles)}
}

// Next claims the next unprocessed tile index. The second return is false
// once the tile range is exhausted; a worker receiving false must exit its
// claim loop.
func (j *Job) Next() (uint32, bool) {
	index := j.next.Add(1) - 1
	return index, index < j.numTiles
}

// NumTiles returns the tile count of the job.
func (j *Job) NumTiles() int {
	return int(j.numTiles)
}

// WorkerFunc is the body of one worker: it constructs any per-worker state
// (codec instances, scratch buffers), then loops claiming tiles from the job
// until exhaustion. Returning a non-nil error stops nothing else - other
// workers drain the remaining tiles - but the error is reported by Run.
type WorkerFunc func(job *Job) error

// Run farms the job over extraWorkers spawned goroutines plus the calling
// goroutine, which participates identically. It returns only after every
// worker has exited, and reports the calling worker's error or, failing
// that, the first error among the spawned workers.
func Run(job *Job, extraWorkers int, worker WorkerFunc) error {
	if extraWorkers <= 0 {
		return worker(job)
	}

	g := new(errgroup.Group)
	for range extraWorkers {
		g.Go(func() error {
			return worker(job)
		})
	}

	callerErr := worker(job)

	// The join also publishes every per-tile store to the caller.
	groupErr := g.Wait()
	if callerErr != nil {
		return callerErr
	}

	return groupErr
}

// CompressWorkers returns the number of additional workers for compressing
// numTiles tiles: the hardware concurrency capped at MaxWorkers, scaled down
// so that no more than ceil(numTiles / MinTilesPerWorker) extra workers are
// spawned. A single-threaded caller gets zero.
func CompressWorkers(numTiles int, singleThread bool) int {
	if singleThread {
		return 0
	}

	budget := min(MaxWorkers, runtime.NumCPU())
	scale := (numTiles + MinTilesPerWorker - 1) / MinTilesPerWorker

	return min(budget, scale)
}

// DecompressWorkers returns the number of additional workers for
// decompressing numTiles tiles given the caller's requested worker count.
// The request is clamped to [1, MaxWorkers]; small streams where
// numTiles <= 2*requested run entirely on the calling thread. Otherwise
// requested-1 extra workers join the caller, scaled down so that no more
// than ceil(numTiles / MinTilesPerWorker) extra workers are spawned.
func DecompressWorkers(numTiles, requested int) int {
	requested = min(max(requested, 1), MaxWorkers)

	if numTiles <= 2*requested {
		return 0
	}

	scale := (numTiles + MinTilesPerWorker - 1) / MinTilesPerWorker

	return min(requested-1, scale)
}
