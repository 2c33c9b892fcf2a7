package pageheap

import "github.com/negrel/assert"

// Merge performs an N-way merge of the sorted runs in srcs, appending the
// merged output to dst and returning the extended slice. Every run must be
// non-empty and ascending under the heap's comparator on entry.
//
// Merge keeps a heap of the runs keyed by their current head element, with
// the comparator reversed so the run with the smallest head sits at the
// root. As a side effect srcs is permuted and every run is drained to
// length zero.
//
// Among runs with equal heads the winner is whichever the max-child tie
// policy places last; the choice is deterministic given the input order.
//
// Total cost is O(N log_F k) comparisons for N output items across k runs.
// Merge allocates only when growing dst; size dst's capacity to the sum of
// the run lengths to avoid that.
func (h *Heap[T]) Merge(dst []T, srcs [][]T) []T {
	assert.True(len(srcs) > 0, "pageheap: Merge with no input runs")

	// Compare runs by their heads in reverse so the heap is a min-of-heads.
	headLess := func(a, b []T) bool {
		assert.True(len(a) > 0 && len(b) > 0)
		return h.less(b[0], a[0])
	}

	last := len(srcs)
	makeHeap(h.layout, srcs[:last], headLess)
	for {
		run := srcs[0]
		assert.True(len(run) > 0)
		dst = append(dst, run[0])
		srcs[0] = run[1:]
		if len(srcs[0]) == 0 {
			last--
			if last == 0 {
				break
			}
			srcs[0], srcs[last] = srcs[last], srcs[0]
		}
		// The head at the root grew in the element order, which under the
		// reversed comparator is a decrease of the root's key.
		fixAfterDecrease(h.layout, srcs[:last], headLess, 0)
	}
	return dst
}
