package stack

import "github.com/pkg/errors"

var (
	ErrUnderflow  = errors.New("stack underflow")
	ErrOutOfRange = errors.New("index out of range")
)

type Stack[T any] struct {
	a []T
}

// NewStack creates a new stack instance
func NewStack[T any](elm ...T) *Stack[T] {
	s := Stack[T]{
		a: make([]T, 0, len(elm)),
	}

	s.a = append(s.a, elm...)

	return &s
}

// Push adds an element to the top of the stack
func (s *Stack[T]) Push(elm T) {
	s.a = append(s.a, elm)
}

// Pop removes and returns the top element of the stack
func (s *Stack[T]) Pop() (T, error) {
	var zero T
	if len(s.a) == 0 {
		return zero, errors.WithStack(ErrUnderflow)
	}

	l := len(s.a) - 1
	elm := s.a[l]
	s.a[l] = zero
	s.a = s.a[:l]

	return elm, nil
}

// Peek returns the top element of the stack without removing it
func (s *Stack[T]) Peek() (T, error) {
	if len(s.a) == 0 {
		var zero T
		return zero, errors.WithStack(ErrUnderflow)
	}

	return s.a[len(s.a)-1], nil
}

// PeekMut returns a pointer to the top element, valid until the next push
func (s *Stack[T]) PeekMut() (*T, error) {
	if len(s.a) == 0 {
		return nil, errors.WithStack(ErrUnderflow)
	}

	return &s.a[len(s.a)-1], nil
}

// Get returns the element at absolute index i (0 is the bottom)
func (s *Stack[T]) Get(i int) (T, error) {
	if i < 0 || i >= len(s.a) {
		var zero T
		return zero, errors.Wrapf(ErrOutOfRange, "index %d, length %d", i, len(s.a))
	}

	return s.a[i], nil
}

// Set overwrites the element at absolute index i
func (s *Stack[T]) Set(i int, elm T) error {
	if i < 0 || i >= len(s.a) {
		return errors.Wrapf(ErrOutOfRange, "index %d, length %d", i, len(s.a))
	}

	s.a[i] = elm
	return nil
}

// Size returns the number of elements on the stack
func (s *Stack[T]) Size() int {
	return len(s.a)
}

// Clear drops every element but keeps the allocated capacity
func (s *Stack[T]) Clear() {
	clear(s.a)
	s.a = s.a[:0]
}

// Shrink releases capacity not used by the current elements
func (s *Stack[T]) Shrink() {
	if cap(s.a) == len(s.a) {
		return
	}

	a := make([]T, len(s.a))
	copy(a, s.a)
	s.a = a
}

// Cap returns the allocated capacity
func (s *Stack[T]) Cap() int {
	return cap(s.a)
}

// Array returns the underlying array of the stack, bottom first
func (s *Stack[T]) Array() []T {
	return s.a
}
