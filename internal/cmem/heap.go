// Package cmem simulates a foreign heap for tests and demos. Callers receive
// only a base pointer, exactly as they would from a C allocator, and must
// free every block explicitly. The heap pins the backing memory until the
// block is freed and keeps leak-accounting counters, so tests can assert that
// every allocation was handed back.
//
// cmem is a collaborator of pkg/cvec, not part of its safety core: cvec never
// allocates, it only wraps pointers such as the ones cmem hands out.
package cmem

import (
	"errors"
	"sync"
	"unsafe"

	"github.com/dustin/go-humanize"

	"github.com/AdrianWangs/go-cvec/pkg/logger"
)

// ErrUnknownPointer 表示释放了一个不属于该堆的指针
var ErrUnknownPointer = errors.New("cmem: pointer does not belong to this heap")

// Heap is a thread-safe pool of manually managed blocks.
type Heap struct {
	mu        sync.Mutex
	blocks    map[unsafe.Pointer][]byte // pins each block until freed
	allocated uint64                    // bytes currently outstanding
	allocs    uint64                    // total number of Alloc calls
}

// NewHeap creates an empty heap.
func NewHeap() *Heap {
	return &Heap{
		blocks: make(map[unsafe.Pointer][]byte),
	}
}

// Alloc returns a zeroed block of size bytes. A size of zero still yields a
// distinct, valid, non-nil pointer, matching the "non-null, valid for len
// elements" contract buffers are constructed under.
func (h *Heap) Alloc(size int) unsafe.Pointer {
	if size < 0 {
		panic("cmem: negative allocation size")
	}
	backing := size
	if backing == 0 {
		backing = 1
	}
	// Backing slices from make are at least 8-byte aligned, which covers the
	// primitive element types the tests and demo wrap.
	buf := make([]byte, backing)
	p := unsafe.Pointer(&buf[0])

	h.mu.Lock()
	h.blocks[p] = buf
	h.allocated += uint64(size)
	h.allocs++
	h.mu.Unlock()

	logger.Debugf("cmem: alloc %s at %p", humanize.IBytes(uint64(size)), p)
	return p
}

// Free hands a block back to the heap. Freeing a pointer the heap did not
// allocate, or freeing the same block twice, returns ErrUnknownPointer.
func (h *Heap) Free(p unsafe.Pointer) error {
	h.mu.Lock()
	buf, ok := h.blocks[p]
	if !ok {
		h.mu.Unlock()
		return ErrUnknownPointer
	}
	delete(h.blocks, p)
	size := len(buf)
	h.allocated -= uint64(size)
	h.mu.Unlock()

	logger.Debugf("cmem: free %s at %p", humanize.IBytes(uint64(size)), p)
	return nil
}

// Outstanding returns the number of blocks allocated but not yet freed.
func (h *Heap) Outstanding() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.blocks)
}

// AllocatedBytes returns the total size of all outstanding blocks.
func (h *Heap) AllocatedBytes() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.allocated
}

// TotalAllocs returns the number of Alloc calls made over the heap's lifetime.
func (h *Heap) TotalAllocs() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.allocs
}

// Alloc allocates room for n elements of type T on h and returns the typed
// base pointer together with a release function shaped for
// cvec.NewWithFree. The release function logs instead of failing if the
// block has somehow already been handed back.
func Alloc[T any](h *Heap, n int) (*T, func(*T)) {
	var t T
	p := h.Alloc(n * int(unsafe.Sizeof(t)))
	release := func(base *T) {
		if err := h.Free(unsafe.Pointer(base)); err != nil {
			logger.Errorf("cmem: release of %p failed: %v", base, err)
		}
	}
	return (*T)(p), release
}
