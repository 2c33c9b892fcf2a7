// Package mmapseq provides file-backed uint64 sequences that heap operations
// can run on in place. A sequence is a memory-mapped file of 8-byte slots
// exposed as an ordinary []uint64, so sorting or merging datasets larger than
// comfortable RAM residency needs no copy in or out.
//
// Values are stored in the byte order of the host that wrote them; the format
// is a scratch format, not an interchange one.
package mmapseq

import (
	"errors"
	"fmt"
	"os"
	"unsafe"

	mmap "github.com/edsrzf/mmap-go"
)

// slotSize is the width of one sequence slot in bytes.
const slotSize = 8

var (
	// ErrEmpty is returned when creating or opening a zero-length sequence;
	// an empty mapping is not representable.
	ErrEmpty = errors.New("mmapseq: zero-length sequence")

	// ErrBadSize is returned by Open when the file size is not a multiple of
	// the slot size.
	ErrBadSize = errors.New("mmapseq: file size is not a multiple of the slot size")

	// ErrClosed is returned by Flush after Close.
	ErrClosed = errors.New("mmapseq: sequence is closed")
)

// Uint64File is a sequence of uint64 slots backed by a memory-mapped file.
// It is not safe for concurrent mutation, matching the exclusive-borrow rule
// of the heap operations run over it.
type Uint64File struct {
	file *os.File
	m    mmap.MMap
	data []uint64
}

// Create creates the file at path, pre-allocates room for n slots, and maps
// it. An existing file at path is truncated. n must be positive.
func Create(path string, n int) (*Uint64File, error) {
	if n <= 0 {
		return nil, fmt.Errorf("mmapseq: create %s: %w", path, ErrEmpty)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("mmapseq: create: %w", err)
	}
	// Try to reserve the blocks up front so a full disk surfaces here rather
	// than later as SIGBUS through the mapping. If the platform pre-allocation
	// fails for any reason, including a full disk, the file is only truncated
	// to size and no blocks are reserved.
	if err := fallocateFile(f, int64(n)*slotSize); err != nil {
		closeErr := f.Close()
		return nil, errors.Join(fmt.Errorf("mmapseq: pre-allocate %s: %w", path, err), closeErr)
	}
	return mapFile(f, n)
}

// Open maps the existing file at path. The file size must be a positive
// multiple of the slot size.
func Open(path string) (*Uint64File, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("mmapseq: open: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		closeErr := f.Close()
		return nil, errors.Join(fmt.Errorf("mmapseq: stat %s: %w", path, err), closeErr)
	}
	size := st.Size()
	if size == 0 {
		closeErr := f.Close()
		return nil, errors.Join(fmt.Errorf("mmapseq: open %s: %w", path, ErrEmpty), closeErr)
	}
	if size%slotSize != 0 {
		closeErr := f.Close()
		return nil, errors.Join(fmt.Errorf("mmapseq: open %s (%d bytes): %w", path, size, ErrBadSize), closeErr)
	}
	return mapFile(f, int(size/slotSize))
}

func mapFile(f *os.File, n int) (*Uint64File, error) {
	m, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		closeErr := f.Close()
		return nil, errors.Join(fmt.Errorf("mmapseq: mmap %s: %w", f.Name(), err), closeErr)
	}
	return &Uint64File{
		file: f,
		m:    m,
		data: unsafe.Slice((*uint64)(unsafe.Pointer(&m[0])), n),
	}, nil
}

// Slice returns the mapped slots as a []uint64. The slice aliases the file
// contents directly and stays valid until Close; mutations become durable
// after Flush or Close.
func (u *Uint64File) Slice() []uint64 { return u.data }

// Len returns the number of slots.
func (u *Uint64File) Len() int { return len(u.data) }

// Flush synchronously writes any modified slots back to the file.
func (u *Uint64File) Flush() error {
	if u.m == nil {
		return ErrClosed
	}
	if err := u.m.Flush(); err != nil {
		return fmt.Errorf("mmapseq: flush %s: %w", u.file.Name(), err)
	}
	return nil
}

// Close flushes and unmaps the sequence and closes the underlying file.
// The slice returned by Slice must not be used afterwards.
func (u *Uint64File) Close() error {
	if u.m == nil {
		return nil
	}
	flushErr := u.m.Flush()
	unmapErr := u.m.Unmap()
	closeErr := u.file.Close()
	u.m = nil
	u.data = nil
	if err := errors.Join(flushErr, unmapErr, closeErr); err != nil {
		return fmt.Errorf("mmapseq: close %s: %w", u.file.Name(), err)
	}
	return nil
}
