package pageheap

import (
	"slices"
	"testing"
)

func TestMergeBasic(t *testing.T) {
	h := NewOrdered[int]()
	srcs := [][]int{{1, 4, 7}, {2, 5, 8}, {3, 6, 9}}
	got := h.Merge(nil, srcs)
	if want := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}; !slices.Equal(got, want) {
		t.Errorf("Merge = %v, want %v", got, want)
	}
	for i, src := range srcs {
		if len(src) != 0 {
			t.Errorf("source %d not drained: %v", i, src)
		}
	}
}

func TestMergeSingleRun(t *testing.T) {
	h := NewOrdered[int]()
	got := h.Merge(nil, [][]int{{1, 2, 3}})
	if want := []int{1, 2, 3}; !slices.Equal(got, want) {
		t.Errorf("Merge = %v, want %v", got, want)
	}
}

func TestMergeAppendsToDst(t *testing.T) {
	h := NewOrdered[int]()
	dst := []int{-1, -2}
	got := h.Merge(dst, [][]int{{5}, {3}})
	if want := []int{-1, -2, 3, 5}; !slices.Equal(got, want) {
		t.Errorf("Merge = %v, want %v", got, want)
	}
}

func TestMergeRandom(t *testing.T) {
	for _, g := range testGeometries {
		t.Run(g.name, func(t *testing.T) {
			rng := newTestRNG(t)
			h := newTestHeap(t, g.fanout, g.pageChunks)

			for range20 := 0; range20 < 20; range20++ {
				k := 1 + rng.Intn(12)
				srcs := make([][]int, k)
				var all []int
				total := 0
				for i := range srcs {
					run := randomInts(rng, 1+rng.Intn(40), 100)
					slices.Sort(run)
					srcs[i] = run
					all = append(all, run...)
					total += len(run)
				}

				got := h.Merge(make([]int, 0, total), srcs)
				if len(got) != total {
					t.Fatalf("merged %d items, want %d", len(got), total)
				}
				if !slices.IsSorted(got) {
					t.Fatalf("merge output not ascending: %v", got)
				}
				mustSameMultiset(t, all, got)
				for i, src := range srcs {
					if len(src) != 0 {
						t.Fatalf("source %d not drained", i)
					}
				}
			}
		})
	}
}

func TestMergeCustomComparator(t *testing.T) {
	// Descending runs merge into descending output when the comparator is
	// inverted.
	h := New(func(a, b int) bool { return a > b })
	got := h.Merge(nil, [][]int{{9, 5, 1}, {8, 4, 2}})
	if want := []int{9, 8, 5, 4, 2, 1}; !slices.Equal(got, want) {
		t.Errorf("Merge = %v, want %v", got, want)
	}
}

func TestMergeEqualHeads(t *testing.T) {
	// Equal keys across runs come out adjacent and the output stays sorted;
	// the winner among equal heads is deterministic.
	h := NewOrdered[int](WithFanout(2))
	a := h.Merge(nil, [][]int{{1, 1, 1}, {1, 1}, {1}})
	if want := []int{1, 1, 1, 1, 1, 1}; !slices.Equal(a, want) {
		t.Errorf("Merge = %v, want %v", a, want)
	}

	b1 := h.Merge(nil, [][]int{{2, 3}, {2, 4}, {2, 5}})
	b2 := h.Merge(nil, [][]int{{2, 3}, {2, 4}, {2, 5}})
	if !slices.Equal(b1, b2) {
		t.Errorf("merge of equal heads not deterministic: %v vs %v", b1, b2)
	}
	if !slices.IsSorted(b1) {
		t.Errorf("merge output not ascending: %v", b1)
	}
}
