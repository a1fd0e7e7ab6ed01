// Package history provides the LIFO stack used for the undo and redo
// timelines of a machine.
// Not safe for concurrent use; the owning Machine serializes access.
package history

// Stack is a last-in-first-out sequence of values. The zero value is an
// empty stack ready for use.
type Stack[T any] struct {
	items []T
}

// New creates an empty Stack.
func New[T any]() *Stack[T] {
	return &Stack[T]{}
}

// Push places v on top of the stack.
func (s *Stack[T]) Push(v T) {
	s.items = append(s.items, v)
}

// Pop removes and returns the top value.
// Returns false if the stack is empty.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	n := len(s.items)
	if n == 0 {
		return zero, false
	}
	v := s.items[n-1]
	s.items[n-1] = zero
	s.items = s.items[:n-1]
	return v, true
}

// Peek returns the top value without removing it.
func (s *Stack[T]) Peek() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// Len returns the number of values on the stack.
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Clear drops every value and releases the backing array.
func (s *Stack[T]) Clear() {
	s.items = nil
}

// Items returns a copy of the stack contents, bottom first.
func (s *Stack[T]) Items() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}
