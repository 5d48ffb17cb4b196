package queue

// Node wraps one record and links it to its neighbours inside a [List].
type Node[T any] struct {
	Value T

	prev, next *Node[T]
	list       *List[T]
}

// NewNode returns a detached node carrying v, ready for [List.InsertBefore].
func NewNode[T any](v T) *Node[T] {
	return &Node[T]{Value: v}
}

// Next returns the successor of n, or nil.
func (n *Node[T]) Next() *Node[T] {
	return n.next
}

// Prev returns the predecessor of n, or nil.
func (n *Node[T]) Prev() *Node[T] {
	return n.prev
}

// Detached reports whether n belongs to no list.
func (n *Node[T]) Detached() bool {
	return n.list == nil
}

// List is an unsynchronized doubly linked list. The zero value is an empty list.
type List[T any] struct {
	head  *Node[T]
	tail  *Node[T]
	count int
}

// NewList creates an empty [List].
func NewList[T any]() *List[T] {
	return &List[T]{}
}

// Len returns the number of nodes.
func (l *List[T]) Len() int {
	return l.count
}

// Front returns the first node, or nil when the list is empty.
func (l *List[T]) Front() *Node[T] {
	return l.head
}

// Back returns the last node, or nil when the list is empty.
func (l *List[T]) Back() *Node[T] {
	return l.tail
}

// Append adds v as the new last element and returns its node.
func (l *List[T]) Append(v T) *Node[T] {
	n := NewNode(v)
	l.linkBack(n)
	return n
}

// Records returns every value from head to tail in a new slice.
func (l *List[T]) Records() []T {
	records := make([]T, 0, l.count)
	for n := l.head; n != nil; n = n.next {
		records = append(records, n.Value)
	}
	return records
}

// FindAt returns the node at the zero-based index, walking from the head.
// Returns nil when index is outside [0, Len()).
func (l *List[T]) FindAt(index int) *Node[T] {
	if index < 0 || index >= l.count {
		return nil
	}

	n := l.head
	for range index {
		n = n.next
	}
	return n
}

// Remove detaches n in O(1). No-op when n is nil or owned by another list.
func (l *List[T]) Remove(n *Node[T]) {
	if n == nil || n.list != l {
		return
	}

	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}

	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}

	l.count--
	n.prev = nil
	n.next = nil
	n.list = nil
}

// InsertBefore splices the detached node n immediately before ref.
//
// A nil ref appends n at the tail, which is also how n becomes the sole element of an empty list.
// No-op when n is nil, n is still attached to a list, or ref belongs to another list.
func (l *List[T]) InsertBefore(n, ref *Node[T]) {
	if n == nil || n.list != nil {
		return
	}
	if ref == nil {
		l.linkBack(n)
		return
	}
	if ref.list != l {
		return
	}

	n.prev = ref.prev
	n.next = ref
	if ref.prev != nil {
		ref.prev.next = n
	} else {
		l.head = n
	}
	ref.prev = n
	n.list = l
	l.count++
}

// Move relocates the element at from so that it ends up at index to.
//
// The destination is resolved after the source node has been removed; when it resolves to no node the
// element is appended at the tail. No-op when from == to or when from is out of range.
func (l *List[T]) Move(from, to int) {
	if from == to {
		return
	}

	n := l.FindAt(from)
	if n == nil {
		return
	}

	l.Remove(n)
	l.InsertBefore(n, l.FindAt(to))
}

// Clear drops every node, detaching each one.
func (l *List[T]) Clear() {
	for n := l.head; n != nil; {
		next := n.next
		n.prev = nil
		n.next = nil
		n.list = nil
		n = next
	}
	l.head = nil
	l.tail = nil
	l.count = 0
}

func (l *List[T]) linkBack(n *Node[T]) {
	n.list = l
	n.next = nil
	if l.tail == nil {
		n.prev = nil
		l.head = n
		l.tail = n
	} else {
		n.prev = l.tail
		l.tail.next = n
		l.tail = n
	}
	l.count++
}
