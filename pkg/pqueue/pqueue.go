package pqueue

import "github.com/cosmic-gao/sylas-heap/pkg/dagerr"

// Comparator orders two values; it must return a negative number if a
// precedes b, zero if they are equivalent, and a positive number if a
// follows b. The same convention as cmp.Compare.
type Comparator[T any] func(a, b T) int

// node is one occurrence in the pairing heap. child is the first of this
// node's children; sibling is the next node at the same level; prev is
// either the parent (when this node is its parent's first child) or the
// previous sibling. The prev pointer is what makes an O(1) cut possible.
type node[T any] struct {
	value   T
	child   *node[T]
	sibling *node[T]
	prev    *node[T]
}

// Handle addresses one occurrence previously returned by Insert. A handle
// is invalidated once the occurrence it names is removed by Poll or
// Delete; using it afterwards returns ErrUnknownHandle.
type Handle[T any] struct {
	n *node[T]
	q *Queue[T]
}

// Queue is an addressable priority queue backed by a pairing heap.
type Queue[T any] struct {
	cmp  Comparator[T]
	root *node[T]
	size int
}

// New creates an empty queue ordered by cmp.
func New[T any](cmp Comparator[T]) *Queue[T] {
	return &Queue[T]{cmp: cmp}
}

// Size returns the number of occurrences currently in the queue.
func (q *Queue[T]) Size() int { return q.size }

// IsEmpty reports whether the queue holds no occurrences.
func (q *Queue[T]) IsEmpty() bool { return q.size == 0 }

// Clear removes every occurrence. Handles issued before Clear become
// invalid.
func (q *Queue[T]) Clear() {
	q.root = nil
	q.size = 0
}

// Peek returns the minimum value without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	var zero T
	if q.root == nil {
		return zero, false
	}
	return q.root.value, true
}

// Insert adds value to the queue and returns a handle that can later be
// used to Decrease or Delete this specific occurrence.
func (q *Queue[T]) Insert(value T) *Handle[T] {
	n := &node[T]{value: value}
	q.root = q.meld(q.root, n)
	q.size++
	return &Handle[T]{n: n, q: q}
}

// Poll removes and returns the minimum value.
func (q *Queue[T]) Poll() (T, bool) {
	var zero T
	if q.root == nil {
		return zero, false
	}
	old := q.root
	val := old.value
	q.root = q.mergePairs(old.child)
	old.child = nil
	q.size--
	return val, true
}

// Decrease updates the value addressed by h to newValue, provided newValue
// does not compare greater than the current value. Returns
// ErrInvalidDecrease otherwise, or ErrUnknownHandle if h does not belong
// to this queue or has already been removed.
func (q *Queue[T]) Decrease(h *Handle[T], newValue T) error {
	if h == nil || h.q != q || h.n == nil {
		return dagerr.ErrUnknownHandle
	}
	if q.cmp(newValue, h.n.value) > 0 {
		return dagerr.ErrInvalidDecrease
	}
	h.n.value = newValue
	if h.n == q.root {
		return nil
	}
	q.cut(h.n)
	q.root = q.meld(q.root, h.n)
	return nil
}

// Delete removes the specific occurrence addressed by h.
func (q *Queue[T]) Delete(h *Handle[T]) error {
	if h == nil || h.q != q || h.n == nil {
		return dagerr.ErrUnknownHandle
	}
	n := h.n
	if n == q.root {
		q.root = q.mergePairs(n.child)
	} else {
		q.cut(n)
		q.root = q.meld(q.root, q.mergePairs(n.child))
	}
	n.child = nil
	n.sibling = nil
	n.prev = nil
	h.n = nil
	q.size--
	return nil
}

// Iterate walks every occurrence in an unspecified order, calling fn for
// each. Iteration stops early if fn returns false.
func (q *Queue[T]) Iterate(fn func(T) bool) {
	q.walk(q.root, fn)
}

func (q *Queue[T]) walk(n *node[T], fn func(T) bool) bool {
	for n != nil {
		if !fn(n.value) {
			return false
		}
		if !q.walk(n.child, fn) {
			return false
		}
		n = n.sibling
	}
	return true
}

// meld attaches the root with the greater value as a child of the root
// with the lesser value and returns the surviving root.
func (q *Queue[T]) meld(a, b *node[T]) *node[T] {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if q.cmp(a.value, b.value) > 0 {
		a, b = b, a
	}
	b.prev = a
	b.sibling = a.child
	if a.child != nil {
		a.child.prev = b
	}
	a.child = b
	a.sibling = nil
	a.prev = nil
	return a
}

// mergePairs performs the classic two-pass pairing-heap combine over a
// sibling list: pair up adjacent trees left to right, then fold the
// resulting list right to left.
func (q *Queue[T]) mergePairs(first *node[T]) *node[T] {
	if first == nil {
		return nil
	}
	if first.sibling == nil {
		first.prev = nil
		return first
	}
	a := first
	b := a.sibling
	rest := b.sibling

	a.sibling, a.prev = nil, nil
	b.sibling, b.prev = nil, nil

	merged := q.meld(a, b)
	return q.meld(merged, q.mergePairs(rest))
}

// cut detaches n from its parent/sibling chain in place, leaving n as a
// standalone root with its own children intact.
func (q *Queue[T]) cut(n *node[T]) {
	if n.prev != nil {
		if n.prev.child == n {
			n.prev.child = n.sibling
		} else {
			n.prev.sibling = n.sibling
		}
	}
	if n.sibling != nil {
		n.sibling.prev = n.prev
	}
	n.sibling = nil
	n.prev = nil
}
