// Package pageheap implements an in-place, generalized d-ary max-heap with a
// page-aware memory layout.
//
// A heap is parameterized by a fanout F (children per node, F >= 2) and a page
// chunk count P (P >= 1). With P == 1 the layout is the classic implicit d-ary
// heap. With P > 1 each parent is clustered with its F children inside pages
// of F*P contiguous slots, so the sibling scan of a sift-down stays within one
// cache-line group. Both parameters are fixed when the heap is constructed;
// pick them to match the element size and the cache hierarchy.
//
// All heap operations work in place on a caller-provided slice and never
// allocate; Merge allocates only when it has to grow its dst slice.
// The library owns no elements and keeps no state between calls.
//
// # Basic Usage
//
// Sorting a slice through the heap:
//
//	h := pageheap.NewOrdered[uint64](pageheap.WithFanout(4))
//	h.Make(data)
//	h.Sort(data) // ascending
//
// Merging k sorted runs:
//
//	h := pageheap.NewOrdered[int]()
//	out := h.Merge(nil, [][]int{{1, 4, 7}, {2, 5, 8}, {3, 6, 9}})
//
// # Contract Checking
//
// Preconditions (heap validity, index bounds) are checked with
// github.com/negrel/assert: compile with the "assert" build tag to enable
// them, leave it off for release builds where the checks vanish entirely.
// Passing ill-formed inputs without the tag is undefined behavior.
//
// # Package Structure
//
//   - Public API: heap.go (New, Make, Push, Pop, Sort, FixAfterIncrease,
//     FixAfterDecrease, Remove), merge.go (Merge)
//   - Configuration: options.go (Option, WithFanout, WithPageChunks)
//   - Index arithmetic: layout.go (ParentIndex, FirstChildIndex)
//   - Sift primitives: sift.go (hole propagation, max-child selection)
//   - File-backed sequences: mmapseq/ (heap operations over mmap'd files)
//   - Convenience queue: pqueue/ (min-first priority queue over the core)
package pageheap
