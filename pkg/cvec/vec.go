// Package cvec provides safe, bounds-checked handles over chunks of memory
// allocated outside the Go heap, typically obtained from a foreign library.
//
// Memory is wrapped into an owning Vec after allocation; its lifecycle can be
// optionally managed by Go if a release function is provided at construction.
// Safety is ensured by bounds-checking all element accesses and by a liveness
// flag that forbids touching the memory after it has been released.
//
// The dangerous surface is deliberately small: the constructors (which trust
// the caller's pointer and element count), the Unchecked accessors, and
// IntoRaw, which returns the contained pointer while cancelling the release
// action. IntoRaw exists to pass memory back to the foreign side; the caller
// becomes responsible for eventually freeing it.
package cvec

import "unsafe"

// Vec is the owning handle over a foreign chunk of memory holding n elements
// of type T. It is the only entity that may trigger release of that memory.
//
// A Vec never grows, shrinks or reallocates; base and n are fixed at
// construction. The zero value is not usable; construct with New or
// NewWithFree.
type Vec[T any] struct {
	base     *T       // first element of the foreign block
	n        int      // element count, not byte count
	free     func(*T) // one-shot release action, nil once spent
	released bool     // set by Free and IntoRaw, checked before every access
}

// New creates a Vec from a raw pointer to a buffer holding n elements.
//
// Panics with ErrNilPointer if base is nil. The returned Vec will not attempt
// to release the memory; the caller retains that responsibility. The caller
// must guarantee base stays valid for n contiguous elements for the whole
// lifetime of the Vec.
func New[T any](base *T, n int) *Vec[T] {
	if base == nil {
		panic(ErrNilPointer)
	}
	if n < 0 {
		panic(ErrNegativeLength)
	}
	return &Vec[T]{base: base, n: n}
}

// NewWithFree creates a Vec from a foreign buffer together with a function to
// run exactly once when the Vec is released, useful for freeing the buffer.
//
// Panics with ErrNilPointer if base is nil. Callers typically pair this with
// a deferred Free:
//
//	v := cvec.NewWithFree(p, n, myFree)
//	defer v.Free()
func NewWithFree[T any](base *T, n int, free func(*T)) *Vec[T] {
	v := New[T](base, n)
	v.free = free
	return v
}

// elem computes the address of element i as base + i*sizeof(T).
// Callers are responsible for bounds.
func (v *Vec[T]) elem(i int) *T {
	return (*T)(unsafe.Add(unsafe.Pointer(v.base), uintptr(i)*unsafe.Sizeof(*v.base)))
}

// assertLive panics if the foreign memory has already been handed back via
// Free or IntoRaw. This is the runtime stand-in for a borrow checker.
func (v *Vec[T]) assertLive() {
	if v.released {
		panic(ErrReleased)
	}
}

// Len returns the number of elements in the buffer.
func (v *Vec[T]) Len() int { return v.n }

// IsEmpty reports whether the buffer holds no elements.
func (v *Vec[T]) IsEmpty() bool { return v.n == 0 }

// Get retrieves a copy of the element at index i, reporting false if i is out
// of range. It never panics on bad indices.
func (v *Vec[T]) Get(i int) (T, bool) {
	v.assertLive()
	if i < 0 || i >= v.n {
		var zero T
		return zero, false
	}
	return *v.elem(i), true
}

// GetMut retrieves a writable pointer to the element at index i, reporting
// false if i is out of range. The pointer aliases the foreign memory and must
// not be retained past the Vec's release.
func (v *Vec[T]) GetMut(i int) (*T, bool) {
	v.assertLive()
	if i < 0 || i >= v.n {
		return nil, false
	}
	return v.elem(i), true
}

// GetUnchecked returns a copy of the element at index i without any bounds or
// liveness check. The caller must guarantee 0 <= i < Len() and that the Vec
// has not been released; anything else is undefined behavior. This is the
// escape hatch for hot paths that have already validated their indices.
func (v *Vec[T]) GetUnchecked(i int) T {
	return *v.elem(i)
}

// GetUncheckedMut returns a writable pointer to the element at index i without
// any bounds or liveness check. Same contract as GetUnchecked.
func (v *Vec[T]) GetUncheckedMut(i int) *T {
	return v.elem(i)
}

// At returns the element at index i, panicking with a *BoundsError if i is out
// of range. Use At over Get at call sites that have asserted the index valid.
func (v *Vec[T]) At(i int) T {
	v.assertLive()
	if i < 0 || i >= v.n {
		panic(&BoundsError{Index: i, Len: v.n})
	}
	return *v.elem(i)
}

// Set stores val at index i, panicking with a *BoundsError if i is out of
// range.
func (v *Vec[T]) Set(i int, val T) {
	v.assertLive()
	if i < 0 || i >= v.n {
		panic(&BoundsError{Index: i, Len: v.n})
	}
	*v.elem(i) = val
}

// Slice derives a read-only view over the whole buffer. Any number of
// read-only views may be live at once, but none may outlive the Vec's release;
// accesses through the view panic with ErrReleased afterwards.
func (v *Vec[T]) Slice() *Slice[T] {
	v.assertLive()
	return &Slice[T]{base: v.base, n: v.n, owner: v}
}

// SliceMut derives a mutable view over the whole buffer. While a mutable view
// is in use no other view into the same memory should be touched; this
// exclusivity is a documented contract, not a runtime check.
func (v *Vec[T]) SliceMut() *MutSlice[T] {
	v.assertLive()
	return &MutSlice[T]{Slice[T]{base: v.base, n: v.n, owner: v}}
}

// AsSlice views the foreign memory as an ordinary Go slice without copying.
// The slice aliases the foreign block and must not be used past release.
func (v *Vec[T]) AsSlice() []T {
	v.assertLive()
	return unsafe.Slice(v.base, v.n)
}

// Snapshot copies every element into a freshly allocated Go slice. The copy
// is independently owned and unaffected by later mutation or release of the
// foreign memory.
func (v *Vec[T]) Snapshot() []T {
	v.assertLive()
	out := make([]T, v.n)
	copy(out, unsafe.Slice(v.base, v.n))
	return out
}

// IntoRaw returns the contained pointer and consumes the Vec without running
// its release action. Ownership of the memory transfers back to the caller,
// who must arrange for it to be freed. Every subsequent checked operation on
// the Vec or on views derived from it panics with ErrReleased.
func (v *Vec[T]) IntoRaw() *T {
	v.assertLive()
	v.free = nil
	v.released = true
	return v.base
}

// Free releases the foreign memory: if a release action was supplied at
// construction it is invoked once with the base pointer, then discarded so no
// code path can run it a second time. Free is idempotent; calling it again,
// or after IntoRaw, is a no-op. Intended for use with defer so the release
// runs on every exit path.
func (v *Vec[T]) Free() {
	if v.released {
		return
	}
	v.released = true
	if f := v.free; f != nil {
		v.free = nil
		f(v.base)
	}
}
