package ring

import (
	"testing"

	"github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/require"
)

// A buffer of capacity N accepts exactly N-1 values; Shift frees one slot.
func TestBuffer_CapacityReservesOneSlot(t *testing.T) {
	t.Parallel()

	const n = 5
	b, err := New[int](n)
	require.NoError(t, err)

	for i := 0; i < n-1; i++ {
		require.Truef(t, b.Add(i), "add #%d must succeed", i)
	}
	require.False(t, b.Add(99), "buffer must be full")
	require.True(t, b.IsFull())
	require.Equal(t, n-1, b.Len())

	v, ok := b.Shift()
	require.True(t, ok)
	require.Equal(t, 0, v)

	require.True(t, b.Add(100), "shift must free exactly one slot")
	require.False(t, b.Add(101))
}

func TestBuffer_PeekShiftPopOrder(t *testing.T) {
	t.Parallel()

	b, err := New[string](4)
	require.NoError(t, err)

	b.Add("a")
	b.Add("b")
	b.Add("c")

	first, ok := b.PeekFirst()
	require.True(t, ok)
	require.Equal(t, "a", first)

	last, ok := b.PeekLast()
	require.True(t, ok)
	require.Equal(t, "c", last)
	require.Equal(t, 3, b.Len(), "peeks must not remove")

	v, _ := b.Pop()
	require.Equal(t, "c", v)
	v, _ = b.Shift()
	require.Equal(t, "a", v)
	v, _ = b.Shift()
	require.Equal(t, "b", v)

	_, ok = b.Shift()
	require.False(t, ok)
	_, ok = b.Pop()
	require.False(t, ok)
	require.True(t, b.IsEmpty())
}

// Values keep FIFO order after the indices wrap around the backing slice.
func TestBuffer_WrapAround(t *testing.T) {
	t.Parallel()

	b, err := New[int](3)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.True(t, b.Add(i))
		require.True(t, b.Add(i+100))
		v, ok := b.Shift()
		require.True(t, ok)
		require.Equal(t, i, v)

		last, _ := b.PeekLast()
		require.Equal(t, i+100, last)
		b.Shift()
		require.Zero(t, b.Len())
	}
}

func TestBuffer_EmptyReads(t *testing.T) {
	t.Parallel()

	b, err := New[int](2)
	require.NoError(t, err)

	_, ok := b.PeekFirst()
	require.False(t, ok)
	_, ok = b.PeekLast()
	require.False(t, ok)
	require.Zero(t, b.Len())
	require.Equal(t, 2, b.Cap())
}

func TestBuffer_Clear(t *testing.T) {
	t.Parallel()

	b, err := New[int](4)
	require.NoError(t, err)

	b.Add(1)
	b.Add(2)
	b.Shift()
	b.Add(3)
	b.Clear()

	require.True(t, b.IsEmpty())
	require.Zero(t, b.Len())
	for i := 0; i < 3; i++ {
		require.True(t, b.Add(i))
	}
	require.False(t, b.Add(3))
}

func TestNew_InvalidCapacity(t *testing.T) {
	t.Parallel()

	for _, c := range []int{-1, 0, 1} {
		b, err := New[int](c)
		require.Nil(t, b)
		require.Error(t, err)
		require.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
	}
}
