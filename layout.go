package pageheap

import (
	"math"

	"github.com/negrel/assert"
)

// NoChild is returned by FirstChildIndex when the index of the first child
// would not fit in an int.
const NoChild = math.MaxInt

// layout holds the heap geometry and its derived constants. pageSize is the
// number of slots per page beyond the root; pageLeaves is the number of
// leaves per page that receive a child page.
type layout struct {
	fanout     int
	pageChunks int
	pageSize   int // fanout * pageChunks
	pageLeaves int // (fanout-1)*pageChunks + 1
}

func newLayout(fanout, pageChunks int) layout {
	return layout{
		fanout:     fanout,
		pageChunks: pageChunks,
		pageSize:   fanout * pageChunks,
		pageLeaves: (fanout-1)*pageChunks + 1,
	}
}

// parent returns the parent index for the given child index u > 0.
func (l layout) parent(u int) int {
	assert.True(u > 0)

	u--
	if l.pageChunks == 1 {
		return u / l.fanout
	}

	if u < l.fanout {
		// Parent is root.
		return 0
	}

	v := u % l.pageSize
	if v >= l.fanout {
		// Fast path. Parent is on the same page as the child.
		return u - v + v/l.fanout
	}

	// Slow path. Parent is on another page.
	v = u/l.pageSize - 1
	u = v/l.pageLeaves + 1
	return u*l.pageSize + v%l.pageLeaves - l.pageLeaves + 1
}

// firstChild returns the index of the first of u's fanout children, or
// NoChild if that index cannot fit in an int.
func (l layout) firstChild(u int) int {
	assert.True(u < NoChild)

	if l.pageChunks == 1 {
		if u > (NoChild-1)/l.fanout {
			// Child overflow.
			return NoChild
		}
		return u*l.fanout + 1
	}

	if u == 0 {
		// Root's child is always 1.
		return 1
	}

	u--
	v := u%l.pageSize + 1
	if v < l.pageSize/l.fanout {
		// Fast path. Child is on the same page as the parent.
		v *= l.fanout - 1
		if u > NoChild-2-v {
			// Child overflow.
			return NoChild
		}
		return u + v + 2
	}

	// Slow path. Child is on another page.
	v += (u/l.pageSize+1)*l.pageLeaves - l.pageSize
	if v > (NoChild-1)/l.pageSize {
		// Child overflow.
		return NoChild
	}
	return v*l.pageSize + 1
}

// ParentIndex returns the index of u's parent. u must be greater than 0;
// the parent of index 0 is undefined.
func (h *Heap[T]) ParentIndex(u int) int {
	return h.parent(u)
}

// FirstChildIndex returns the index of the first of u's Fanout children.
// The children of u, when they exist within the heap, occupy the Fanout
// consecutive slots starting there. Returns NoChild if the index would
// overflow; callers traversing downward must compare the result against the
// heap size before use.
func (h *Heap[T]) FirstChildIndex(u int) int {
	return h.firstChild(u)
}
