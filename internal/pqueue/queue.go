package pqueue

import "container/heap"

// Queue is a binary min-heap ordered by a caller supplied less function.
// Items are tracked by identity so an item whose key changed after it was
// pushed can be restored in place with Rescore.
type Queue[T comparable] struct {
	h entries[T]
}

// New creates an empty queue ordered by less.
func New[T comparable](less func(a, b T) bool) *Queue[T] {
	return &Queue[T]{
		h: entries[T]{
			less:  less,
			index: make(map[T]int),
		},
	}
}

// Push inserts item. Pushing an item that is already queued rescores it instead.
func (q *Queue[T]) Push(item T) {
	if _, ok := q.h.index[item]; ok {
		q.Rescore(item)
		return
	}
	heap.Push(&q.h, item)
}

// Pop removes and returns the minimum item. It returns false when the queue is empty.
func (q *Queue[T]) Pop() (T, bool) {
	if len(q.h.items) == 0 {
		var zero T
		return zero, false
	}
	return heap.Pop(&q.h).(T), true
}

// Peek returns the minimum item without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	if len(q.h.items) == 0 {
		var zero T
		return zero, false
	}
	return q.h.items[0], true
}

// Rescore restores heap order for item after its key changed.
// It returns false if item is not queued.
func (q *Queue[T]) Rescore(item T) bool {
	i, ok := q.h.index[item]
	if !ok {
		return false
	}
	heap.Fix(&q.h, i)
	return true
}

// Contains reports whether item is currently queued.
func (q *Queue[T]) Contains(item T) bool {
	_, ok := q.h.index[item]
	return ok
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	return len(q.h.items)
}

// Clear empties the queue, keeping the backing array for reuse.
func (q *Queue[T]) Clear() {
	var zero T
	for i := range q.h.items {
		q.h.items[i] = zero
	}
	q.h.items = q.h.items[:0]
	clear(q.h.index)
}

// entries adapts the queue to container/heap and keeps index in sync on every swap.
type entries[T comparable] struct {
	items []T
	index map[T]int
	less  func(a, b T) bool
}

func (e entries[T]) Len() int           { return len(e.items) }
func (e entries[T]) Less(i, j int) bool { return e.less(e.items[i], e.items[j]) }

func (e entries[T]) Swap(i, j int) {
	e.items[i], e.items[j] = e.items[j], e.items[i]
	e.index[e.items[i]] = i
	e.index[e.items[j]] = j
}

func (e *entries[T]) Push(x any) {
	item := x.(T)
	e.index[item] = len(e.items)
	e.items = append(e.items, item)
}

func (e *entries[T]) Pop() any {
	n := len(e.items)
	item := e.items[n-1]
	var zero T
	e.items[n-1] = zero
	e.items = e.items[:n-1]
	delete(e.index, item)
	return item
}
