package cvec

// Iter is a forward iterator over a read-only view. Obtain one from
// Slice.Iter (or MutSlice.Iter) and drive it with the usual pattern:
//
//	for it := s.Iter(); it.Next(); {
//		use(it.At())
//	}
//
// Traversal is purely synchronous and bounded by the view's length. Once Next
// has returned false it keeps returning false.
type Iter[T any] struct {
	s   *Slice[T]
	pos int
	cur *T
}

// Next advances the iterator and reports whether an element is available.
func (it *Iter[T]) Next() bool {
	it.s.assertLive()
	if it.pos >= it.s.n {
		it.cur = nil
		return false
	}
	it.cur = it.s.elem(it.pos)
	it.pos++
	return true
}

// At returns the current element. Only valid after a Next call that returned
// true.
func (it *Iter[T]) At() T {
	return *it.cur
}

// MutIter is a forward iterator over a mutable view, yielding writable
// element pointers. Each yielded pointer is exclusive; do not run two MutIters
// over the same view at once.
type MutIter[T any] struct {
	s   *MutSlice[T]
	pos int
	cur *T
}

// Next advances the iterator and reports whether an element is available.
func (it *MutIter[T]) Next() bool {
	it.s.assertLive()
	if it.pos >= it.s.n {
		it.cur = nil
		return false
	}
	it.cur = it.s.elem(it.pos)
	it.pos++
	return true
}

// At returns a copy of the current element. Only valid after a Next call that
// returned true.
func (it *MutIter[T]) At() T {
	return *it.cur
}

// AtMut returns a writable pointer to the current element, aliasing the
// foreign memory. Only valid after a Next call that returned true.
func (it *MutIter[T]) AtMut() *T {
	return it.cur
}
