package pool

import "sync"

// Slice pool for per-operation tile bookkeeping: the compressed-size vector
// is reused across compress calls.
var intSlicePool = sync.Pool{
	New: func() any { return &[]int{} },
}

// GetIntSlice retrieves and resizes an int slice from the pool.
//
// The returned slice has length size with all elements zeroed. The caller
// must call the returned cleanup function (typically with defer) to return
// the slice to the pool.
func GetIntSlice(size int) ([]int, func()) {
	ptr, _ := intSlicePool.Get().(*[]int)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]int, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
		clear(slice)
	}

	return slice, func() { intSlicePool.Put(ptr) }
}
