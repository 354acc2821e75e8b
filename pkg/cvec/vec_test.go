package cvec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdrianWangs/go-cvec/internal/cmem"
)

// mallocBytes wraps a freshly allocated foreign block of n bytes, releasing
// it back to heap when the Vec is freed.
func mallocBytes(heap *cmem.Heap, n int) *Vec[byte] {
	base, release := cmem.Alloc[byte](heap, n)
	return NewWithFree(base, n, release)
}

func TestVecBasic(t *testing.T) {
	heap := cmem.NewHeap()
	cv := mallocBytes(heap, 16)
	defer cv.Free()

	p3, ok := cv.GetMut(3)
	require.True(t, ok)
	*p3 = 8
	p4, ok := cv.GetMut(4)
	require.True(t, ok)
	*p4 = 9

	got3, ok := cv.Get(3)
	require.True(t, ok)
	assert.Equal(t, byte(8), got3)
	got4, ok := cv.Get(4)
	require.True(t, ok)
	assert.Equal(t, byte(9), got4)

	assert.Equal(t, got3, cv.At(3))
	assert.Equal(t, got4, cv.At(4))
	assert.Equal(t, 16, cv.Len())
	assert.False(t, cv.IsEmpty())
}

func TestVecNilPointerPanics(t *testing.T) {
	require.PanicsWithValue(t, ErrNilPointer, func() {
		New[byte](nil, 9)
	})
	require.PanicsWithValue(t, ErrNilPointer, func() {
		New[int64](nil, 9)
	})
	require.PanicsWithValue(t, ErrNilPointer, func() {
		NewWithFree[int32](nil, 9, func(*int32) {})
	})
}

func TestVecNegativeLengthPanics(t *testing.T) {
	var x byte
	require.PanicsWithValue(t, ErrNegativeLength, func() {
		New(&x, -1)
	})
}

func TestVecOverrunGet(t *testing.T) {
	heap := cmem.NewHeap()
	cv := mallocBytes(heap, 16)
	defer cv.Free()

	_, ok := cv.Get(17)
	assert.False(t, ok)
	_, ok = cv.Get(16)
	assert.False(t, ok)
	_, ok = cv.Get(-1)
	assert.False(t, ok)
}

func TestVecOverrunSet(t *testing.T) {
	heap := cmem.NewHeap()
	cv := mallocBytes(heap, 16)
	defer cv.Free()

	p, ok := cv.GetMut(17)
	assert.False(t, ok)
	assert.Nil(t, p)
}

func TestVecCheckedIndexPanics(t *testing.T) {
	heap := cmem.NewHeap()
	cv := mallocBytes(heap, 16)
	defer cv.Free()

	require.PanicsWithError(t, "cvec: index 17 out of range [0, 16)", func() {
		cv.At(17)
	})
	require.PanicsWithError(t, "cvec: index -1 out of range [0, 16)", func() {
		cv.Set(-1, 0)
	})

	defer func() {
		err, ok := recover().(error)
		require.True(t, ok)
		assert.True(t, IsBoundsError(err))
	}()
	cv.At(16)
}

func TestVecIntoRaw(t *testing.T) {
	var backing [4]int64
	cv := NewWithFree(&backing[0], 4, func(*int64) {
		t.Fatal("release action must not run after IntoRaw")
	})

	p := cv.IntoRaw()
	assert.True(t, p == &backing[0])

	// The handle is consumed; checked operations refuse to touch it.
	require.PanicsWithValue(t, ErrReleased, func() { cv.Get(0) })
	require.PanicsWithValue(t, ErrReleased, func() { cv.IntoRaw() })

	// Free after IntoRaw is a no-op, not a second release.
	cv.Free()
}

func TestVecFreeRunsReleaseExactlyOnce(t *testing.T) {
	var backing [8]byte
	freed := 0
	var freedBase *byte
	cv := NewWithFree(&backing[0], 8, func(base *byte) {
		freed++
		freedBase = base
	})

	// Views created and abandoned before release do not participate in it.
	_ = cv.Slice()
	_ = cv.SliceMut()

	cv.Free()
	cv.Free()
	assert.Equal(t, 1, freed)
	assert.True(t, freedBase == &backing[0])
}

func TestVecUseAfterFreePanics(t *testing.T) {
	heap := cmem.NewHeap()
	cv := mallocBytes(heap, 4)
	s := cv.Slice()
	cv.Free()

	require.PanicsWithValue(t, ErrReleased, func() { cv.Get(0) })
	require.PanicsWithValue(t, ErrReleased, func() { cv.At(0) })
	require.PanicsWithValue(t, ErrReleased, func() { cv.Set(0, 1) })
	require.PanicsWithValue(t, ErrReleased, func() { cv.Snapshot() })
	require.PanicsWithValue(t, ErrReleased, func() { cv.Slice() })
	require.PanicsWithValue(t, ErrReleased, func() { cv.AsSlice() })
	require.PanicsWithValue(t, ErrReleased, func() { s.Get(0) })

	assert.Equal(t, 0, heap.Outstanding())
}

func TestVecSnapshotIsIndependent(t *testing.T) {
	heap := cmem.NewHeap()
	cv := mallocBytes(heap, 3)
	defer cv.Free()

	for i := 0; i < 3; i++ {
		cv.Set(i, byte(i+1))
	}

	owned := cv.Snapshot()
	require.Equal(t, []byte{1, 2, 3}, owned)

	// Mutating the copy leaves the foreign memory untouched, and vice versa.
	owned[0] = 99
	got, _ := cv.Get(0)
	assert.Equal(t, byte(1), got)

	cv.Set(1, 42)
	assert.Equal(t, byte(2), owned[1])
}

func TestVecAsSliceAliases(t *testing.T) {
	heap := cmem.NewHeap()
	cv := mallocBytes(heap, 4)
	defer cv.Free()

	s := cv.AsSlice()
	require.Len(t, s, 4)
	s[2] = 7
	assert.Equal(t, byte(7), cv.At(2))
}

func TestVecUncheckedAccess(t *testing.T) {
	var backing [4]int32
	cv := New(&backing[0], 4)

	*cv.GetUncheckedMut(2) = 31
	assert.Equal(t, int32(31), cv.GetUnchecked(2))
	assert.Equal(t, int32(31), backing[2])
}

func TestVecEmpty(t *testing.T) {
	var backing [1]byte
	cv := New(&backing[0], 0)

	assert.Equal(t, 0, cv.Len())
	assert.True(t, cv.IsEmpty())
	_, ok := cv.Get(0)
	assert.False(t, ok)
	assert.Empty(t, cv.Snapshot())
}

// The walkthrough scenario: backing [0,1,2], checked reads on both sides of
// the bound, then a write through a mutable view observed by the handle.
func TestVecScenario(t *testing.T) {
	backing := [3]int32{0, 1, 2}
	cv := New(&backing[0], 3)

	got, ok := cv.Get(1)
	require.True(t, ok)
	assert.Equal(t, int32(1), got)

	_, ok = cv.Get(5)
	assert.False(t, ok)

	ms := cv.SliceMut()
	ms.Set(0, 10)

	got, ok = cv.Get(0)
	require.True(t, ok)
	assert.Equal(t, int32(10), got)
}
