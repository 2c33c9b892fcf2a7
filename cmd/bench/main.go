// Bench is a benchmarking tool for measuring pageheap sort and merge
// throughput across heap geometries.
//
// Usage:
//
//	go run ./cmd/bench -op sort -n 10000000 -fanout 4
//	go run ./cmd/bench -op merge -n 10000000 -runs 16
//	go run ./cmd/bench -op sort -n 50000000 -file /tmp/keys.dat
//
// Flags:
//
//	-op          Operation: sort or merge (default: sort)
//	-n           Total number of keys (default: 10,000,000)
//	-fanout      Heap fanout (default: 4)
//	-pagechunks  Page chunks, 1 for the non-paged layout (default: 1)
//	-runs        Number of sorted runs for merge (default: 16)
//	-hash        Key generator: xxhash, xxh3, or murmur3 (default: xxhash)
//	-file        Sort a memory-mapped file at this path instead of RAM
//	-cpuprofile  Write a CPU profile to this file
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"slices"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"

	"github.com/tselwyn/pageheap"
	"github.com/tselwyn/pageheap/mmapseq"
)

func keyGen(name string) (func(i uint64) uint64, error) {
	var buf [8]byte
	switch name {
	case "xxhash":
		return func(i uint64) uint64 {
			binary.LittleEndian.PutUint64(buf[:], i)
			return xxhash.Sum64(buf[:])
		}, nil
	case "xxh3":
		return func(i uint64) uint64 {
			binary.LittleEndian.PutUint64(buf[:], i)
			return xxh3.Hash(buf[:])
		}, nil
	case "murmur3":
		return func(i uint64) uint64 {
			binary.LittleEndian.PutUint64(buf[:], i)
			return murmur3.Sum64(buf[:])
		}, nil
	default:
		return nil, fmt.Errorf("unknown hash %q (want xxhash, xxh3, or murmur3)", name)
	}
}

func main() {
	opFlag := flag.String("op", "sort", "operation: sort or merge")
	nFlag := flag.Int("n", 10_000_000, "total number of keys")
	fanoutFlag := flag.Int("fanout", 4, "heap fanout")
	chunksFlag := flag.Int("pagechunks", 1, "page chunks (1 = non-paged layout)")
	runsFlag := flag.Int("runs", 16, "number of sorted runs for merge")
	hashFlag := flag.String("hash", "xxhash", "key generator: xxhash, xxh3, or murmur3")
	fileFlag := flag.String("file", "", "sort a memory-mapped file at this path instead of RAM")
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file")
	flag.Parse()

	gen, err := keyGen(*hashFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	h := pageheap.NewOrdered[uint64](
		pageheap.WithFanout(*fanoutFlag),
		pageheap.WithPageChunks(*chunksFlag))

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create cpu profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	fmt.Printf("geometry: fanout=%d pagechunks=%d, keys=%d, hash=%s\n",
		*fanoutFlag, *chunksFlag, *nFlag, *hashFlag)

	switch *opFlag {
	case "sort":
		if err := benchSort(h, gen, *nFlag, *fileFlag); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case "merge":
		if err := benchMerge(h, *hashFlag, *nFlag, *runsFlag); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown op %q (want sort or merge)\n", *opFlag)
		os.Exit(2)
	}
}

func benchSort(h *pageheap.Heap[uint64], gen func(uint64) uint64, n int, path string) error {
	var keys []uint64
	if path != "" {
		seq, err := mmapseq.Create(path, n)
		if err != nil {
			return err
		}
		defer seq.Close()
		keys = seq.Slice()
		fmt.Printf("sorting in place in %s\n", path)
	} else {
		keys = make([]uint64, n)
	}

	fmt.Println("Generating keys...")
	for i := range keys {
		keys[i] = gen(uint64(i))
	}

	fmt.Println("Building heap...")
	makeStart := time.Now()
	h.Make(keys)
	makeDuration := time.Since(makeStart)

	fmt.Println("Sorting...")
	sortStart := time.Now()
	h.Sort(keys)
	sortDuration := time.Since(sortStart)

	if !slices.IsSorted(keys) {
		return fmt.Errorf("sort verification failed: output not ascending")
	}

	report("make", n, makeDuration)
	report("sort", n, sortDuration)
	return nil
}

func benchMerge(h *pageheap.Heap[uint64], hashName string, n, runs int) error {
	if runs < 1 {
		return fmt.Errorf("need at least one run, got %d", runs)
	}

	fmt.Printf("Preparing %d sorted runs...\n", runs)
	srcs := make([][]uint64, runs)
	var g errgroup.Group
	for r := 0; r < runs; r++ {
		r := r
		g.Go(func() error {
			// Each goroutine needs its own generator state.
			gen, err := keyGen(hashName)
			if err != nil {
				return err
			}
			run := make([]uint64, n/runs)
			base := uint64(r) << 32
			for i := range run {
				run[i] = gen(base + uint64(i))
			}
			slices.Sort(run)
			srcs[r] = run
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	total := 0
	for _, run := range srcs {
		total += len(run)
	}
	dst := make([]uint64, 0, total)

	fmt.Println("Merging...")
	mergeStart := time.Now()
	dst = h.Merge(dst, srcs)
	mergeDuration := time.Since(mergeStart)

	if len(dst) != total {
		return fmt.Errorf("merge verification failed: %d items out, want %d", len(dst), total)
	}
	if !slices.IsSorted(dst) {
		return fmt.Errorf("merge verification failed: output not ascending")
	}

	report("merge", total, mergeDuration)
	return nil
}

func report(phase string, n int, d time.Duration) {
	rate := float64(n) / d.Seconds() / 1e6
	fmt.Printf("%-5s %12d keys in %10v  (%.2f Mkeys/s)\n", phase, n, d.Round(time.Millisecond), rate)
}
