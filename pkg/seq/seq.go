// Package seq provides a growable sequence with an explicit doubling policy.
package seq

import (
	"errors"
	"fmt"
)

// BaselineCapacity is the initial capacity used when none is given.
const BaselineCapacity = 1024

// ErrLimit is returned when an append would push the sequence past its limit.
var ErrLimit = errors.New("sequence limit exceeded")

// Seq is an ordered, append-only sequence of T.
// Capacity starts at a baseline and doubles whenever an append would exceed it.
type Seq[T any] struct {
	items []T
	limit int // 0 = unlimited
}

// New creates a sequence with the given starting capacity.
// A non-positive capacity selects BaselineCapacity.
func New[T any](capacity int) *Seq[T] {
	if capacity <= 0 {
		capacity = BaselineCapacity
	}
	return &Seq[T]{items: make([]T, 0, capacity)}
}

// WithLimit caps the number of elements the sequence may hold.
func (s *Seq[T]) WithLimit(limit int) *Seq[T] {
	s.limit = limit
	return s
}

// Push appends values in order. Either all values are appended or none are.
func (s *Seq[T]) Push(values ...T) error {
	need := len(s.items) + len(values)
	if s.limit > 0 && need > s.limit {
		return fmt.Errorf("%w: need %d, limit %d", ErrLimit, need, s.limit)
	}
	if need > cap(s.items) {
		s.grow(need)
	}
	s.items = append(s.items, values...)
	return nil
}

// grow doubles capacity until need fits.
func (s *Seq[T]) grow(need int) {
	newCap := cap(s.items)
	if newCap == 0 {
		newCap = BaselineCapacity
	}
	for newCap < need {
		newCap *= 2
	}
	items := make([]T, len(s.items), newCap)
	copy(items, s.items)
	s.items = items
}

// Len returns the number of elements.
func (s *Seq[T]) Len() int {
	return len(s.items)
}

// Cap returns the current capacity.
func (s *Seq[T]) Cap() int {
	return cap(s.items)
}

// Slice returns the backing elements. The result aliases the sequence.
func (s *Seq[T]) Slice() []T {
	return s.items
}

// Release drops the backing storage.
func (s *Seq[T]) Release() {
	s.items = nil
}
