package queue

import "sync"

// Queue is a [List] guarded by a single mutex, safe for use from concurrent request handlers.
type Queue[T any] struct {
	mu     sync.RWMutex
	list   *List[T]
	maxLen int
}

// New creates an empty [Queue]. A positive maxLen caps the length accepted by [Queue.Offer]; zero means unbounded.
func New[T any](maxLen int) *Queue[T] {
	if maxLen < 0 {
		maxLen = 0
	}
	return &Queue[T]{list: NewList[T](), maxLen: maxLen}
}

// MaxLen returns the configured length cap (0 when unbounded).
func (q *Queue[T]) MaxLen() int {
	return q.maxLen
}

// Append adds v at the tail unconditionally.
func (q *Queue[T]) Append(v T) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.list.Append(v)
}

// Offer adds v at the tail unless the queue is already at its length cap.
// Reports whether v was added.
func (q *Queue[T]) Offer(v T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.maxLen > 0 && q.list.Len() >= q.maxLen {
		return false
	}
	q.list.Append(v)
	return true
}

// OfferAll appends every value in order, or none of them when they would not all fit under the cap.
// Reports whether the values were added.
func (q *Queue[T]) OfferAll(vs ...T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.maxLen > 0 && q.list.Len()+len(vs) > q.maxLen {
		return false
	}
	for _, v := range vs {
		q.list.Append(v)
	}
	return true
}

// Move relocates the element at from to index to. See [List.Move].
func (q *Queue[T]) Move(from, to int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.list.Move(from, to)
}

// RemoveAt removes the element at index and reports whether anything was removed.
func (q *Queue[T]) RemoveAt(index int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := q.list.FindAt(index)
	if n == nil {
		return false
	}
	q.list.Remove(n)
	return true
}

// Clear empties the queue.
func (q *Queue[T]) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.list.Clear()
}

// At returns the value at index.
func (q *Queue[T]) At(index int) (T, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if n := q.list.FindAt(index); n != nil {
		return n.Value, true
	}
	var zero T
	return zero, false
}

// Snapshot returns a copy of every value, head to tail.
func (q *Queue[T]) Snapshot() []T {
	q.mu.RLock()
	defer q.mu.RUnlock()

	return q.list.Records()
}

// Len returns the current number of elements.
func (q *Queue[T]) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()

	return q.list.Len()
}
