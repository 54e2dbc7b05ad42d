package types

import (
	"maps"
	"slices"
)

// Set is a generic hash set for comparable types, backed by a
// map[T]struct{}. It is mutable: Add and Delete modify the set in place.
type Set[T comparable] map[T]struct{}

// NewSet creates a new Set containing the provided elements.
func NewSet[T comparable](data ...T) Set[T] {
	set := make(Set[T], len(data))
	set.Add(data...)
	return set
}

// Add inserts one or more elements into the set.
func (s Set[T]) Add(values ...T) {
	for _, val := range values {
		s[val] = struct{}{}
	}
}

// Delete removes one or more elements from the set.
func (s Set[T]) Delete(values ...T) {
	for _, val := range values {
		delete(s, val)
	}
}

// Has reports whether the set contains the given element.
func (s Set[T]) Has(value T) bool {
	_, ok := s[value]
	return ok
}

// Len returns the number of elements in the set.
func (s Set[T]) Len() int {
	return len(s)
}

// ToSlice returns the set's elements as a slice, in unspecified order.
func (s Set[T]) ToSlice() []T {
	return slices.Collect(maps.Keys(s))
}
