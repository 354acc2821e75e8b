package cvec

import "unsafe"

// Slice is a non-owning, read-only view over a foreign chunk of memory
// holding n elements of type T. It never releases the memory it points into.
//
// A Slice derived from a Vec is bound to that Vec's liveness: once the Vec is
// freed or unwrapped, checked accesses through the view panic with
// ErrReleased. A Slice built directly from a raw pointer has no owner and
// relies entirely on the caller keeping the memory valid.
type Slice[T any] struct {
	base  *T
	n     int
	owner *Vec[T] // nil when constructed from a raw pointer
}

// NewSlice creates a read-only view from a raw pointer to a buffer holding n
// elements. Panics with ErrNilPointer if base is nil. The view takes no
// ownership; the caller must guarantee the memory stays valid for the view's
// lifetime.
func NewSlice[T any](base *T, n int) *Slice[T] {
	if base == nil {
		panic(ErrNilPointer)
	}
	if n < 0 {
		panic(ErrNegativeLength)
	}
	return &Slice[T]{base: base, n: n}
}

func (s *Slice[T]) elem(i int) *T {
	return (*T)(unsafe.Add(unsafe.Pointer(s.base), uintptr(i)*unsafe.Sizeof(*s.base)))
}

func (s *Slice[T]) assertLive() {
	if s.owner != nil && s.owner.released {
		panic(ErrReleased)
	}
}

// Len returns the number of elements in the view.
func (s *Slice[T]) Len() int { return s.n }

// IsEmpty reports whether the view holds no elements.
func (s *Slice[T]) IsEmpty() bool { return s.n == 0 }

// Get retrieves a copy of the element at index i, reporting false if i is out
// of range.
func (s *Slice[T]) Get(i int) (T, bool) {
	s.assertLive()
	if i < 0 || i >= s.n {
		var zero T
		return zero, false
	}
	return *s.elem(i), true
}

// GetUnchecked returns the element at index i without any bounds or liveness
// check. The caller must guarantee 0 <= i < Len() and that the underlying
// memory is still valid; anything else is undefined behavior.
func (s *Slice[T]) GetUnchecked(i int) T {
	return *s.elem(i)
}

// At returns the element at index i, panicking with a *BoundsError if i is
// out of range.
func (s *Slice[T]) At(i int) T {
	s.assertLive()
	if i < 0 || i >= s.n {
		panic(&BoundsError{Index: i, Len: s.n})
	}
	return *s.elem(i)
}

// Iter returns a forward iterator over the view, starting at index 0. Each
// call yields an independent iterator, so iteration is restartable.
func (s *Slice[T]) Iter() *Iter[T] {
	return &Iter[T]{s: s}
}

// Snapshot copies every element into a freshly allocated Go slice, decoupled
// from the foreign memory.
func (s *Slice[T]) Snapshot() []T {
	s.assertLive()
	out := make([]T, s.n)
	copy(out, unsafe.Slice(s.base, s.n))
	return out
}
