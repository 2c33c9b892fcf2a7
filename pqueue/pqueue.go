// Package pqueue provides a small priority queue on top of the pageheap
// core. The queue owns its backing slice and pops the least element first;
// internally the comparator is inverted so the core's max-heap machinery
// applies unchanged.
package pqueue

import (
	"cmp"

	"github.com/tselwyn/pageheap"
)

// Queue is a min-first priority queue. The zero value is not usable; build
// one with New or NewOrdered. Not safe for concurrent use.
type Queue[T any] struct {
	heap  *pageheap.Heap[T]
	items []T
}

// New returns a queue that pops the least element under less first. The
// geometry options are passed through to the underlying heap.
func New[T any](less func(a, b T) bool, opts ...pageheap.Option) *Queue[T] {
	return &Queue[T]{
		heap: pageheap.New(func(a, b T) bool { return less(b, a) }, opts...),
	}
}

// NewOrdered returns a queue over the natural < of T.
func NewOrdered[T cmp.Ordered](opts ...pageheap.Option) *Queue[T] {
	return New(cmp.Less[T], opts...)
}

// Len returns the number of queued elements.
func (q *Queue[T]) Len() int { return len(q.items) }

// Push adds v to the queue.
func (q *Queue[T]) Push(v T) {
	q.items = append(q.items, v)
	q.heap.Push(q.items)
}

// Pop removes and returns the least element. The second result is false if
// the queue is empty.
func (q *Queue[T]) Pop() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	q.heap.Pop(q.items)
	last := len(q.items) - 1
	v := q.items[last]
	q.items[last] = zero
	q.items = q.items[:last]
	return v, true
}

// Peek returns the least element without removing it. The second result is
// false if the queue is empty.
func (q *Queue[T]) Peek() (T, bool) {
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.items[0], true
}

// Items returns the queue's backing slice in heap order. Callers may mutate
// an element in place, but must then call Fix with its index before any
// other queue operation.
func (q *Queue[T]) Items() []T { return q.items }

// Fix restores the queue after the element at index i has been mutated.
func (q *Queue[T]) Fix(i int) {
	if i > 0 {
		p := q.heap.ParentIndex(i)
		if q.heap.Less(q.items[p], q.items[i]) {
			// The element now orders before its parent; lift it.
			q.heap.FixAfterIncrease(q.items, i)
			return
		}
	}
	q.heap.FixAfterDecrease(q.items, i)
}

// Remove removes and returns the element at index i.
func (q *Queue[T]) Remove(i int) T {
	q.heap.Remove(q.items, i)
	last := len(q.items) - 1
	v := q.items[last]
	var zero T
	q.items[last] = zero
	q.items = q.items[:last]
	return v
}

// Clear empties the queue, retaining the backing storage.
func (q *Queue[T]) Clear() {
	var zero T
	for i := range q.items {
		q.items[i] = zero
	}
	q.items = q.items[:0]
}
