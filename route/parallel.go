package route

import (
	"runtime"
	"sync"
)

// forEachPatch runs fn(i) for i in [0,n) across a worker pool sized to
// GOMAXPROCS, one goroutine per contiguous chunk rather than per patch
// (the same chunked worker-pool shape as the teacher's
// evaluate.concur.go and model/router.go subset()). Each iteration owns
// only its own index i: this is the destination-owned-write invariant
// from SPEC_FULL.md §5, and it is why forEachPatch never needs locking.
func forEachPatch(n int, fn func(i int)) {
	if n == 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				fn(i)
			}
		}(lo, hi)
	}
	wg.Wait()
}

// maxOverPatches runs fn(i) for i in [0,n), returning the maximum value
// it ever returns. This is the one non-destination reduction the
// concurrency model permits (SPEC_FULL.md §5): each worker folds its own
// partial maximum, and the partials are folded once, serially, at the
// end -- there is never a shared mutable cmax written from multiple
// goroutines.
func maxOverPatches(n int, seed float64, fn func(i int) float64) float64 {
	if n == 0 {
		return seed
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	partials := make([]float64, workers)
	for w := range partials {
		partials[w] = seed
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			m := seed
			for i := lo; i < hi; i++ {
				if v := fn(i); v > m {
					m = v
				}
			}
			partials[w] = m
		}(w, lo, hi)
	}
	wg.Wait()

	m := seed
	for _, v := range partials {
		if v > m {
			m = v
		}
	}
	return m
}
