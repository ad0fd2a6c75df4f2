package capability

import (
	"cmp"
	"maps"
	"slices"
)

// Set is an unordered set of enum values advertised by the device.
// A nil or empty Set means the corresponding axis is unsupported.
type Set[T cmp.Ordered] map[T]struct{}

// SetOf creates a Set holding the given values.
func SetOf[T cmp.Ordered](values ...T) Set[T] {
	s := make(Set[T], len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts values into the set.
func (s Set[T]) Add(values ...T) {
	for _, v := range values {
		s[v] = struct{}{}
	}
}

// Contains returns true if v is a member of the set.
func (s Set[T]) Contains(v T) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of members.
func (s Set[T]) Len() int {
	return len(s)
}

// IsEmpty returns true if the set has no members.
func (s Set[T]) IsEmpty() bool {
	return len(s) == 0
}

// Sorted returns the members in enum order.
func (s Set[T]) Sorted() []T {
	return slices.Sorted(maps.Keys(s))
}

// First returns the lowest member in enum order.
// The boolean is false if the set is empty.
func (s Set[T]) First() (T, bool) {
	var first T
	found := false
	for v := range s {
		if !found || v < first {
			first = v
			found = true
		}
	}
	return first, found
}

// Equal returns true if both sets hold exactly the same members.
// A nil set equals an empty set.
func (s Set[T]) Equal(other Set[T]) bool {
	return maps.Equal(s, other)
}

// Clone returns an independent copy of the set. Cloning nil yields an empty set.
func (s Set[T]) Clone() Set[T] {
	if s == nil {
		return Set[T]{}
	}
	return maps.Clone(s)
}
