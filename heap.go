package pageheap

import (
	"cmp"
	"fmt"
	"math"

	"github.com/negrel/assert"
)

// Heap carries a comparator and a fixed (fanout, pageChunks) geometry. It
// holds no elements: every operation runs in place on a caller-provided
// slice, which must not be touched by anyone else for the duration of the
// call. A Heap value is safe for concurrent use as long as the slices passed
// to it are not shared.
//
// The slice is a valid max-heap when for every index u > 0,
// !less(s[ParentIndex(u)], s[u]). The maximum is at index 0.
type Heap[T any] struct {
	layout
	less func(a, b T) bool
}

// New returns a heap using less for ordering. less must be a strict weak
// ordering (irreflexive, transitive, with transitive incomparability) and
// must not mutate the elements it compares.
//
// New panics if the configured geometry is invalid: fanout < 2,
// pageChunks < 1, or a page too large to index.
func New[T any](less func(a, b T) bool, opts ...Option) *Heap[T] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.fanout < 2 {
		panic(fmt.Sprintf("pageheap: fanout %d out of range, need at least 2", cfg.fanout))
	}
	if cfg.pageChunks < 1 {
		panic(fmt.Sprintf("pageheap: pageChunks %d out of range, need at least 1", cfg.pageChunks))
	}
	if cfg.pageChunks > math.MaxInt/cfg.fanout {
		panic(fmt.Sprintf("pageheap: page size %d*%d overflows", cfg.fanout, cfg.pageChunks))
	}
	return &Heap[T]{
		layout: newLayout(cfg.fanout, cfg.pageChunks),
		less:   less,
	}
}

// NewOrdered returns a heap ordered by the natural < of T.
func NewOrdered[T cmp.Ordered](opts ...Option) *Heap[T] {
	return New(cmp.Less[T], opts...)
}

// Fanout returns the configured number of children per node.
func (h *Heap[T]) Fanout() int { return h.fanout }

// PageChunks returns the configured number of fanout-sized chunks per page.
func (h *Heap[T]) PageChunks() int { return h.pageChunks }

// Less reports whether a orders before b under the heap's comparator.
func (h *Heap[T]) Less(a, b T) bool { return h.less(a, b) }

func isHeapUntil[T any](l layout, s []T, less func(a, b T) bool) int {
	for u := 1; u < len(s); u++ {
		if less(s[l.parent(u)], s[u]) {
			return u
		}
	}
	return len(s)
}

// IsHeapUntil returns the index of the first element that violates the heap
// property, or len(s) if s is a valid max-heap.
func (h *Heap[T]) IsHeapUntil(s []T) int {
	return isHeapUntil(h.layout, s, h.less)
}

// IsHeap reports whether s is a valid max-heap.
func (h *Heap[T]) IsHeap(s []T) bool {
	return h.IsHeapUntil(s) == len(s)
}

func makeHeap[T any](l layout, s []T, less func(a, b T) bool) {
	size := len(s)
	if size > 1 {
		// Skip leaf nodes without children. This is cheap for the non-paged
		// layout; paged leaves are not contiguous at the tail, so there every
		// slot is visited.
		i := size - 2
		if l.pageChunks == 1 {
			i = (size - 2) / l.fanout
		}
		for ; i >= 0; i-- {
			item := s[i]
			siftDown(l, s, less, size, i, item)
		}
	}

	if checksEnabled {
		assert.True(isHeapUntil(l, s, less) == len(s), "pageheap: Make postcondition")
	}
}

// Make arranges s into a max-heap in O(len(s)) comparisons and moves.
func (h *Heap[T]) Make(s []T) {
	makeHeap(h.layout, s, h.less)
}

// Push inserts the element at s[len(s)-1] into the heap s[:len(s)-1], which
// must be valid. Takes O(log_F n) comparisons and moves.
func (h *Heap[T]) Push(s []T) {
	assert.True(len(s) > 0, "pageheap: Push on an empty slice")
	if checksEnabled {
		assert.True(h.IsHeap(s[:len(s)-1]), "pageheap: Push precondition")
	}

	if size := len(s); size > 1 {
		u := size - 1
		item := s[u]
		siftUp(h.layout, s, h.less, 0, u, item)
	}

	if checksEnabled {
		assert.True(h.IsHeap(s), "pageheap: Push postcondition")
	}
}

// popInPlace pops the maximum of the first size elements into s[size-1].
func popInPlace[T any](l layout, s []T, less func(a, b T) bool, size int) {
	assert.True(size > 1)

	holeIdx := size - 1
	item := s[holeIdx]
	s[holeIdx] = s[0]
	siftDown(l, s, less, holeIdx, 0, item)
}

// Pop moves the maximum element of the heap s to s[len(s)-1]; the remaining
// s[:len(s)-1] is a valid heap. Takes O(log_F n) comparisons and moves.
func (h *Heap[T]) Pop(s []T) {
	assert.True(len(s) > 0, "pageheap: Pop on an empty slice")
	if checksEnabled {
		assert.True(h.IsHeap(s), "pageheap: Pop precondition")
	}

	if len(s) > 1 {
		popInPlace(h.layout, s, h.less, len(s))
	}

	if checksEnabled {
		assert.True(h.IsHeap(s[:len(s)-1]), "pageheap: Pop postcondition")
	}
}

// Sort sorts the max-heap s into ascending order, destroying the heap.
// Takes O(n log_F n) comparisons and moves. The order of equal elements is
// determined by the later-sibling tie policy of the max-child scan.
func (h *Heap[T]) Sort(s []T) {
	if checksEnabled {
		assert.True(h.IsHeap(s), "pageheap: Sort precondition")
	}

	for i := len(s); i > 1; i-- {
		popInPlace(h.layout, s, h.less, i)
	}
}

// FixAfterIncrease restores the heap after the element at index i has grown,
// i.e. less(old, new) holds. s[:i] must be a valid heap on entry.
func (h *Heap[T]) FixAfterIncrease(s []T, i int) {
	assert.True(i >= 0 && i < len(s), "pageheap: FixAfterIncrease index out of range")
	if checksEnabled {
		assert.True(h.IsHeap(s[:i]), "pageheap: FixAfterIncrease precondition")
	}

	if i > 0 {
		item := s[i]
		siftUp(h.layout, s, h.less, 0, i, item)
	}

	if checksEnabled {
		assert.True(h.IsHeap(s[:i+1]), "pageheap: FixAfterIncrease postcondition")
	}
}

func fixAfterDecrease[T any](l layout, s []T, less func(a, b T) bool, i int) {
	item := s[i]
	siftDown(l, s, less, len(s), i, item)
}

// FixAfterDecrease restores the heap after the element at index i has
// shrunk, i.e. less(new, old) holds. s[:i] must be a valid heap on entry.
func (h *Heap[T]) FixAfterDecrease(s []T, i int) {
	assert.True(len(s) > 0, "pageheap: FixAfterDecrease on an empty slice")
	assert.True(i >= 0 && i < len(s), "pageheap: FixAfterDecrease index out of range")
	if checksEnabled {
		assert.True(h.IsHeap(s[:i]), "pageheap: FixAfterDecrease precondition")
	}

	fixAfterDecrease(h.layout, s, h.less, i)

	if checksEnabled {
		assert.True(h.IsHeap(s), "pageheap: FixAfterDecrease postcondition")
	}
}

// Remove excises the element at index i from the heap s, parking its value
// at s[len(s)-1]; the remaining s[:len(s)-1] is a valid heap. Takes
// O(log_F n) comparisons and moves.
func (h *Heap[T]) Remove(s []T, i int) {
	assert.True(len(s) > 0, "pageheap: Remove on an empty slice")
	assert.True(i >= 0 && i < len(s), "pageheap: Remove index out of range")
	if checksEnabled {
		assert.True(h.IsHeap(s), "pageheap: Remove precondition")
	}

	last := len(s) - 1
	if i < last {
		item := s[last]
		s[last] = s[i]
		if h.less(item, s[last]) {
			siftDown(h.layout, s, h.less, last, i, item)
		} else {
			siftUp(h.layout, s, h.less, 0, i, item)
		}
	}

	if checksEnabled {
		assert.True(h.IsHeap(s[:len(s)-1]), "pageheap: Remove postcondition")
	}
}
