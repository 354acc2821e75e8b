package cvec

import "unsafe"

// MutSlice is a non-owning, mutable view over a foreign chunk of memory. It
// offers everything Slice does plus in-place mutation through checked and
// unchecked accessors and a mutable iterator.
//
// While a MutSlice is in use, no other view (read-only or mutable) into the
// same memory should be touched. The library does not police this; it is the
// same shared-xor-exclusive contract a Go programmer follows when handing out
// a sub-slice of a buffer they keep writing to.
type MutSlice[T any] struct {
	Slice[T]
}

// NewMutSlice creates a mutable view from a raw pointer to a buffer holding n
// elements. Panics with ErrNilPointer if base is nil. The view takes no
// ownership; the caller must guarantee the memory stays valid and exclusively
// writable for the view's lifetime.
func NewMutSlice[T any](base *T, n int) *MutSlice[T] {
	if base == nil {
		panic(ErrNilPointer)
	}
	if n < 0 {
		panic(ErrNegativeLength)
	}
	return &MutSlice[T]{Slice[T]{base: base, n: n}}
}

// GetMut retrieves a writable pointer to the element at index i, reporting
// false if i is out of range. The pointer aliases the foreign memory and must
// not be retained past the view's validity.
func (s *MutSlice[T]) GetMut(i int) (*T, bool) {
	s.assertLive()
	if i < 0 || i >= s.n {
		return nil, false
	}
	return s.elem(i), true
}

// GetUncheckedMut returns a writable pointer to the element at index i
// without any bounds or liveness check. The caller must guarantee
// 0 <= i < Len() and that the underlying memory is still valid; anything else
// is undefined behavior.
func (s *MutSlice[T]) GetUncheckedMut(i int) *T {
	return s.elem(i)
}

// Set stores val at index i, panicking with a *BoundsError if i is out of
// range.
func (s *MutSlice[T]) Set(i int, val T) {
	s.assertLive()
	if i < 0 || i >= s.n {
		panic(&BoundsError{Index: i, Len: s.n})
	}
	*s.elem(i) = val
}

// IterMut returns a forward iterator yielding writable element pointers,
// starting at index 0. Each call yields an independent iterator. A live
// MutIter hands out exclusive references; do not interleave two of them over
// the same view.
func (s *MutSlice[T]) IterMut() *MutIter[T] {
	return &MutIter[T]{s: s}
}

// AsSlice views the foreign memory as an ordinary Go slice without copying.
// The slice aliases the foreign block and must not be used past release.
func (s *MutSlice[T]) AsSlice() []T {
	s.assertLive()
	return unsafe.Slice(s.base, s.n)
}
