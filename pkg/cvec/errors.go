package cvec

import (
	"errors"
	"fmt"
)

// 预定义的错误
var (
	// ErrNilPointer 表示构造时传入了空指针
	ErrNilPointer = errors.New("cvec: nil base pointer")
	// ErrNegativeLength 表示构造时传入了负的元素个数
	ErrNegativeLength = errors.New("cvec: negative element count")
	// ErrReleased 表示缓冲区已释放后仍被访问
	ErrReleased = errors.New("cvec: use of buffer after release")
)

// BoundsError reports a checked index-operator access outside [0, Len).
//
// The maybe-absent accessors (Get, GetMut) signal the same condition with a
// false second return instead; only the asserted-present forms (At, Set)
// panic with a *BoundsError.
type BoundsError struct {
	Index int // the requested index
	Len   int // the element count of the buffer or view
}

// Error 实现error接口
func (e *BoundsError) Error() string {
	return fmt.Sprintf("cvec: index %d out of range [0, %d)", e.Index, e.Len)
}

// IsBoundsError 判断是否为越界错误
func IsBoundsError(err error) bool {
	var be *BoundsError
	return errors.As(err, &be)
}
