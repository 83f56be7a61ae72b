package collection

import "iter"

// Stack represents last in first out container, the zero value is an empty stack
type Stack[T any] struct {
	items []T
}

// Push adds item on top
func (s *Stack[T]) Push(item T) {
	s.items = append(s.items, item)
}

// Pop removes and returns top item
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	last := len(s.items) - 1
	ret := s.items[last]
	s.items[last] = zero
	s.items = s.items[:last]
	return ret, true
}

// Peek returns top item
func (s *Stack[T]) Peek() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// Len returns number of items
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Clear removes all items
func (s *Stack[T]) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}

// All iterates from top to bottom
func (s *Stack[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := len(s.items) - 1; i >= 0; i-- {
			if !yield(s.items[i]) {
				return
			}
		}
	}
}

// BackToFront returns true, iteration starts with the most recently pushed item
func (s *Stack[T]) BackToFront() bool {
	return true
}

// NewStack creates a stack with items pushed in order
func NewStack[T any](items ...T) *Stack[T] {
	ret := &Stack[T]{}
	for _, item := range items {
		ret.Push(item)
	}
	return ret
}
