package pageheap

import "github.com/negrel/assert"

// The sift primitives use hole propagation rather than pairwise swaps: the
// value at the starting index is held in a local, the hole is walked through
// the tree with single moves, and the held value is written back once at the
// end. One move per step instead of three.

// siftUp walks the hole from holeIdx toward rootIdx until item is no longer
// greater than the hole's parent, then writes item into the hole.
func siftUp[T any](l layout, s []T, less func(a, b T) bool, rootIdx, holeIdx int, item T) {
	assert.True(holeIdx >= rootIdx)

	for holeIdx > rootIdx {
		parentIdx := l.parent(holeIdx)
		assert.True(parentIdx >= rootIdx)
		if !less(s[parentIdx], item) {
			break
		}
		s[holeIdx] = s[parentIdx]
		holeIdx = parentIdx
	}
	s[holeIdx] = item
}

// moveUpMaxChild moves the maximum of the count children starting at
// childIdx into the hole and returns the index of the new hole. Ties keep
// the later-indexed sibling; this is observable through the order equal keys
// surface in Sort and Merge.
func moveUpMaxChild[T any](l layout, s []T, less func(a, b T) bool, count, holeIdx, childIdx int) int {
	if checksEnabled {
		assert.True(childIdx == l.firstChild(holeIdx))
	}

	maxIdx := childIdx
	for i := 1; i < count; i++ {
		if !less(s[childIdx+i], s[maxIdx]) {
			maxIdx = childIdx + i
		}
	}
	s[holeIdx] = s[maxIdx]
	return maxIdx
}

// siftDown walks the hole from holeIdx toward the leaves of the heap of the
// given size, always descending into the maximum child, then sifts item back
// up along the travelled path. The closing siftUp matters whenever item is
// greater than some ancestor of the final hole on that path; the descent does
// not compare against item, so this is common for Pop, Sort and Make as well
// as for Remove and FixAfterDecrease.
func siftDown[T any](l layout, s []T, less func(a, b T) bool, size, holeIdx int, item T) {
	assert.True(size > 0)
	assert.True(holeIdx < size)

	rootIdx := holeIdx
	remaining := (size - 1) % l.fanout
	for {
		childIdx := l.firstChild(holeIdx)
		if childIdx >= size-remaining {
			if childIdx < size {
				assert.True(size-childIdx == remaining)
				holeIdx = moveUpMaxChild(l, s, less, remaining, holeIdx, childIdx)
			}
			break
		}
		assert.True(size-childIdx >= l.fanout)
		holeIdx = moveUpMaxChild(l, s, less, l.fanout, holeIdx, childIdx)
	}
	siftUp(l, s, less, rootIdx, holeIdx, item)
}
