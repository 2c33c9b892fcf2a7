// layout_test.go exercises the index arithmetic on its own: the concrete
// parent/child tables for the documented geometries, the fast/slow paged
// branches, overflow sentinels, and the parent/child round-trip across every
// test geometry.
package pageheap

import "testing"

func TestParentChildQuaternary(t *testing.T) {
	h := NewOrdered[int]() // default F=4, P=1

	parents := []struct{ u, want int }{
		{1, 0}, {2, 0}, {3, 0}, {4, 0},
		{5, 1}, {6, 1}, {8, 1},
		{9, 2}, {20, 4},
	}
	for _, tc := range parents {
		if got := h.ParentIndex(tc.u); got != tc.want {
			t.Errorf("ParentIndex(%d) = %d, want %d", tc.u, got, tc.want)
		}
	}

	children := []struct{ u, want int }{
		{0, 1}, {1, 5}, {2, 9}, {4, 17},
	}
	for _, tc := range children {
		if got := h.FirstChildIndex(tc.u); got != tc.want {
			t.Errorf("FirstChildIndex(%d) = %d, want %d", tc.u, got, tc.want)
		}
	}
}

func TestParentChildBinary(t *testing.T) {
	h := NewOrdered[int](WithFanout(2))

	for u := 1; u < 1000; u++ {
		if got, want := h.ParentIndex(u), (u-1)/2; got != want {
			t.Fatalf("ParentIndex(%d) = %d, want %d", u, got, want)
		}
	}
	for u := 0; u < 1000; u++ {
		if got, want := h.FirstChildIndex(u), 2*u+1; got != want {
			t.Fatalf("FirstChildIndex(%d) = %d, want %d", u, got, want)
		}
	}
}

// With F=2, P=2 the page size is 4 and each page has 3 leaves. Index 1 keeps
// its children on its own page while index 3's children start a later page
// (page 2, from index 9; page 1 holds the children of index 2).
func TestParentChildPagedBranches(t *testing.T) {
	h := NewOrdered[int](WithFanout(2), WithPageChunks(2))

	if got := h.FirstChildIndex(0); got != 1 {
		t.Errorf("FirstChildIndex(0) = %d, want 1", got)
	}
	// Fast path: child of 1 lands on the same page.
	if got := h.FirstChildIndex(1); got != 3 {
		t.Errorf("FirstChildIndex(1) = %d, want 3", got)
	}
	// Slow path: child of 3 opens a later page.
	if got := h.FirstChildIndex(3); got != 9 {
		t.Errorf("FirstChildIndex(3) = %d, want 9", got)
	}
	parents := []struct{ u, want int }{
		{1, 0}, {2, 0}, // below the fanout, parent is the root
		{3, 1}, {4, 1}, // same-page parents
		{9, 3}, {10, 3}, // back across the page boundary
	}
	for _, tc := range parents {
		if got := h.ParentIndex(tc.u); got != tc.want {
			t.Errorf("ParentIndex(%d) = %d, want %d", tc.u, got, tc.want)
		}
	}
}

func TestParentChildRoundTrip(t *testing.T) {
	for _, g := range testGeometries {
		t.Run(g.name, func(t *testing.T) {
			h := newTestHeap(t, g.fanout, g.pageChunks)
			for u := 0; u <= 1000; u++ {
				c := h.FirstChildIndex(u)
				if c == NoChild {
					continue
				}
				if c <= u {
					t.Fatalf("FirstChildIndex(%d) = %d, not past the parent", u, c)
				}
				for j := 0; j < g.fanout; j++ {
					if got := h.ParentIndex(c + j); got != u {
						t.Fatalf("ParentIndex(FirstChildIndex(%d)+%d) = %d, want %d", u, j, got, u)
					}
				}
			}
		})
	}
}

// On the simple layout the child block of parent(u) starts at
// firstChild(parent(u)) and u sits (u-1) mod F slots into it.
func TestSimpleLayoutOffsetRoundTrip(t *testing.T) {
	for _, fanout := range []int{2, 3, 4, 8} {
		h := NewOrdered[int](WithFanout(fanout))
		for u := 1; u <= 1000; u++ {
			p := h.ParentIndex(u)
			if got := h.FirstChildIndex(p) + (u-1)%fanout; got != u {
				t.Fatalf("F=%d: firstChild(parent(%d)) + offset = %d, want %d", fanout, u, got, u)
			}
		}
	}
}

func TestFirstChildOverflow(t *testing.T) {
	simple := NewOrdered[int](WithFanout(4))
	if got := simple.FirstChildIndex(NoChild - 1); got != NoChild {
		t.Errorf("simple layout: FirstChildIndex near MaxInt = %d, want NoChild", got)
	}

	paged := NewOrdered[int](WithFanout(2), WithPageChunks(2))
	if got := paged.FirstChildIndex(NoChild - 1); got != NoChild {
		t.Errorf("paged layout: FirstChildIndex near MaxInt = %d, want NoChild", got)
	}
}

func TestNewGeometryValidation(t *testing.T) {
	cases := []struct {
		name string
		opts []Option
	}{
		{"fanout1", []Option{WithFanout(1)}},
		{"fanout0", []Option{WithFanout(0)}},
		{"chunks0", []Option{WithPageChunks(0)}},
		{"pageOverflow", []Option{WithFanout(2), WithPageChunks(NoChild)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected New to panic on invalid geometry")
				}
			}()
			NewOrdered[int](tc.opts...)
		})
	}
}

func TestGeometryAccessors(t *testing.T) {
	h := NewOrdered[int]()
	if h.Fanout() != 4 || h.PageChunks() != 1 {
		t.Errorf("default geometry = (%d, %d), want (4, 1)", h.Fanout(), h.PageChunks())
	}
	h = NewOrdered[int](WithFanout(2), WithPageChunks(512))
	if h.Fanout() != 2 || h.PageChunks() != 512 {
		t.Errorf("geometry = (%d, %d), want (2, 512)", h.Fanout(), h.PageChunks())
	}
}
