//go:build assert

package pageheap

// checksEnabled gates the O(n) validity checks. Cheap index assertions run
// through negrel/assert directly; whole-heap scans are additionally fenced
// behind this constant so release builds do not even evaluate them.
const checksEnabled = true
