package collection

import "iter"

// Queue represents first in first out container, the zero value is an empty queue
type Queue[T any] struct {
	items []T
	head  int
}

// Enqueue adds item at the back
func (q *Queue[T]) Enqueue(item T) {
	q.items = append(q.items, item)
}

// Dequeue removes and returns front item
func (q *Queue[T]) Dequeue() (T, bool) {
	var zero T
	if q.head >= len(q.items) {
		return zero, false
	}
	ret := q.items[q.head]
	q.items[q.head] = zero
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return ret, true
}

// Len returns number of items
func (q *Queue[T]) Len() int {
	return len(q.items) - q.head
}

// Clear removes all items
func (q *Queue[T]) Clear() {
	clear(q.items)
	q.items = q.items[:0]
	q.head = 0
}

// All iterates from front to back
func (q *Queue[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := q.head; i < len(q.items); i++ {
			if !yield(q.items[i]) {
				return
			}
		}
	}
}
