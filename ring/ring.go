// Package ring implements a fixed-capacity circular deque.
//
// A Buffer is backed by a preallocated slice and two indices. One slot of the
// backing slice is always left unused so that "empty" (head == tail) can be
// told apart from "full" (tail+1 == head); a Buffer built with capacity N
// therefore holds at most N-1 values.
//
// All operations are O(1). A Buffer is not safe for concurrent use.
package ring

import (
	"github.com/jmgilman/go/errors"
)

// Buffer is a bounded double-ended queue over a fixed backing array.
type Buffer[T any] struct {
	buf  []T
	head int // index of the oldest value
	tail int // index of the next free slot
}

// New allocates a Buffer with the given backing capacity.
// Capacity must be at least 2: one slot is reserved, so capacity 1 could
// never hold a value.
func New[T any](capacity int) (*Buffer[T], error) {
	if capacity < 2 {
		return nil, errors.WithContext(
			errors.Newf(errors.CodeInvalidConfig, "ring: capacity must be >= 2, got %d", capacity),
			"capacity", capacity,
		)
	}
	return &Buffer[T]{buf: make([]T, capacity)}, nil
}

// Add appends v as the newest value. It returns false and leaves the buffer
// untouched when the buffer is full.
func (b *Buffer[T]) Add(v T) bool {
	next := (b.tail + 1) % len(b.buf)
	if next == b.head {
		return false
	}
	b.buf[b.tail] = v
	b.tail = next
	return true
}

// PeekFirst returns the oldest value without removing it.
func (b *Buffer[T]) PeekFirst() (T, bool) {
	if b.head == b.tail {
		var zero T
		return zero, false
	}
	return b.buf[b.head], true
}

// PeekLast returns the newest value without removing it.
func (b *Buffer[T]) PeekLast() (T, bool) {
	if b.head == b.tail {
		var zero T
		return zero, false
	}
	return b.buf[b.prev(b.tail)], true
}

// Shift removes and returns the oldest value.
func (b *Buffer[T]) Shift() (T, bool) {
	if b.head == b.tail {
		var zero T
		return zero, false
	}
	v := b.buf[b.head]
	b.head = (b.head + 1) % len(b.buf)
	return v, true
}

// Pop removes and returns the newest value.
func (b *Buffer[T]) Pop() (T, bool) {
	if b.head == b.tail {
		var zero T
		return zero, false
	}
	b.tail = b.prev(b.tail)
	return b.buf[b.tail], true
}

// Len returns the number of live values.
func (b *Buffer[T]) Len() int {
	n := len(b.buf)
	return (b.tail + n - b.head) % n
}

// Cap returns the backing capacity. The buffer holds at most Cap()-1 values.
func (b *Buffer[T]) Cap() int { return len(b.buf) }

// IsEmpty reports whether the buffer holds no values.
func (b *Buffer[T]) IsEmpty() bool { return b.head == b.tail }

// IsFull reports whether the next Add would fail.
func (b *Buffer[T]) IsFull() bool { return (b.tail+1)%len(b.buf) == b.head }

// Clear empties the buffer in O(1). Stale values stay in the backing slice
// until overwritten.
func (b *Buffer[T]) Clear() { b.head, b.tail = 0, 0 }

func (b *Buffer[T]) prev(i int) int {
	return (i + len(b.buf) - 1) % len(b.buf)
}
